package register

import (
	"github.com/ezrec/sifive/hart"
)

// MBPM_BDP is the branch-direction prediction bit of the bpm CSR.
const MBPM_BDP = 1 << 0

// Mbpm is a snapshot of the branch prediction mode register.
//
// Depending on the core, branch prediction consists of a return address
// stack (RAS), a branch target buffer (BTB) and a branch history table
// (BHT). The register trades average performance for more predictable
// execution time in hard real-time code.
type Mbpm struct {
	bits uint64
}

// Bits returns the raw register value.
func (m Mbpm) Bits() uint64 {
	return m.bits
}

// Bdp is the branch-direction prediction mode. It determines the value
// returned by the BHT: false is dynamic direction prediction, true is
// static-taken direction prediction.
//
// The BTB is cleared on any write to bdp. The RAS is unaffected.
func (m Mbpm) Bdp() bool {
	return (m.bits & MBPM_BDP) != 0
}

// ReadMbpm reads the branch prediction mode register.
func ReadMbpm(h hart.Hart) Mbpm {
	return Mbpm{bits: h.Execute(uint32(INSN_MBPM_READ), 0)}
}

// SetStaticTaken selects static-taken direction prediction.
func SetStaticTaken(h hart.Hart) {
	h.Execute(uint32(INSN_MBPM_SET_BDP), 0)
}

// SetDynamic selects dynamic direction prediction.
func SetDynamic(h hart.Hart) {
	h.Execute(uint32(INSN_MBPM_CLEAR_BDP), 0)
}
