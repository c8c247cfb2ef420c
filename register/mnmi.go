package register

import (
	"github.com/ezrec/sifive/hart"
)

// NmiCause is the reason for the current NMI.
type NmiCause int

//go:generate go tool stringer -linecomment -type=NmiCause
const (
	NMI_CAUSE_RESERVED  = NmiCause(1) // reserved
	NMI_CAUSE_RNMI_PIN  = NmiCause(2) // rnmi_pin
	NMI_CAUSE_BUS_ERROR = NmiCause(3) // bus_error
)

// MNCAUSE_INTERRUPT is set in mncause when the NMI is an interrupt.
const MNCAUSE_INTERRUPT = uint64(1) << 63

// DecodeNmiCause decodes a raw mncause value.
//
// The interrupt flag is ignored. ok is false for zero, which is what a
// core without NMI cause reporting reads, and for any code outside the
// known set.
func DecodeNmiCause(raw uint64) (cause NmiCause, ok bool) {
	switch code := raw &^ MNCAUSE_INTERRUPT; code {
	case uint64(NMI_CAUSE_RESERVED), uint64(NMI_CAUSE_RNMI_PIN), uint64(NMI_CAUSE_BUS_ERROR):
		cause = NmiCause(code)
		ok = true
	}
	return
}

// ReadMnepc reads the PC saved on NMI entry.
func ReadMnepc(h hart.Hart) uint64 {
	return h.Execute(uint32(INSN_MNEPC_READ), 0)
}

// WriteMnepc writes the NMI exception PC. Outside of an NMI handler the
// register is free for use as scratch.
func WriteMnepc(h hart.Hart, value uint64) {
	h.Execute(uint32(INSN_MNEPC_WRITE), value)
}

// ReadMncause reads the raw NMI cause register.
func ReadMncause(h hart.Hart) uint64 {
	return h.Execute(uint32(INSN_MNCAUSE_READ), 0)
}

// ReadNmiCause reads and decodes the NMI cause register.
func ReadNmiCause(h hart.Hart) (cause NmiCause, ok bool) {
	return DecodeNmiCause(ReadMncause(h))
}

// NmiCauseSupported returns true if the core reports NMI causes.
// A core without cause reporting reads mncause as zero.
func NmiCauseSupported(h hart.Hart) bool {
	return ReadMncause(h) != 0
}
