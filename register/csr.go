package register

import (
	"iter"
	"maps"

	"github.com/ezrec/sifive/asm"
)

// SiFive custom CSR addresses.
const (
	CSR_MBPM     = uint16(0x7C0) // Branch prediction mode.
	CSR_MFEATURE = uint16(0x7C1) // Feature disable.
	CSR_MNEPC    = uint16(0x351) // NMI exception PC, usable as scratch.
	CSR_MNCAUSE  = uint16(0x352) // NMI cause.
)

// Instruction words for each access.
var (
	INSN_MBPM_READ      = asm.MustCsr(asm.CSRRS, asm.A0, CSR_MBPM, uint32(asm.ZERO))
	INSN_MBPM_SET_BDP   = asm.MustCsr(asm.CSRRSI, asm.ZERO, CSR_MBPM, MBPM_BDP)
	INSN_MBPM_CLEAR_BDP = asm.MustCsr(asm.CSRRCI, asm.ZERO, CSR_MBPM, MBPM_BDP)
	INSN_MFEATURE_CLEAR = asm.MustCsr(asm.CSRRC, asm.ZERO, CSR_MFEATURE, uint32(asm.A0))
	INSN_MNEPC_READ     = asm.MustCsr(asm.CSRRS, asm.A0, CSR_MNEPC, uint32(asm.ZERO))
	INSN_MNEPC_WRITE    = asm.MustCsr(asm.CSRRW, asm.ZERO, CSR_MNEPC, uint32(asm.A0))
	INSN_MNCAUSE_READ   = asm.MustCsr(asm.CSRRS, asm.A0, CSR_MNCAUSE, uint32(asm.ZERO))
)

var _register_defines = map[string]uint64{
	"CSR_MBPM":     uint64(CSR_MBPM),
	"CSR_MFEATURE": uint64(CSR_MFEATURE),
	"CSR_MNEPC":    uint64(CSR_MNEPC),
	"CSR_MNCAUSE":  uint64(CSR_MNCAUSE),

	"NMI_CAUSE_RESERVED":  uint64(NMI_CAUSE_RESERVED),
	"NMI_CAUSE_RNMI_PIN":  uint64(NMI_CAUSE_RNMI_PIN),
	"NMI_CAUSE_BUS_ERROR": uint64(NMI_CAUSE_BUS_ERROR),
}

// Defines returns the CSR address and NMI cause names.
func Defines() iter.Seq2[string, uint64] {
	return maps.All(_register_defines)
}

// Accesses returns every instruction word issued by this package.
func Accesses() iter.Seq[asm.Insn] {
	return func(yield func(asm.Insn) bool) {
		for _, insn := range []asm.Insn{
			INSN_MBPM_READ,
			INSN_MBPM_SET_BDP,
			INSN_MBPM_CLEAR_BDP,
			INSN_MFEATURE_CLEAR,
			INSN_MNEPC_READ,
			INSN_MNEPC_WRITE,
			INSN_MNCAUSE_READ,
		} {
			if !yield(insn) {
				return
			}
		}
	}
}
