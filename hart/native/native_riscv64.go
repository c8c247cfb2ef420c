//go:build riscv64

package native

import (
	"fmt"

	"github.com/ezrec/sifive/asm"
	"github.com/ezrec/sifive/hart"
	"github.com/ezrec/sifive/register"
)

// Implemented in native_riscv64.s
func cease()
func pause()
func cflushAll()
func cflushVA(va uint64)
func cdiscardAll()
func cdiscardVA(va uint64)
func mnret()
func mbpmRead() uint64
func mbpmSetBdp()
func mbpmClearBdp()
func mfeatureClear(mask uint64)
func mnepcRead() uint64
func mnepcWrite(value uint64)
func mncauseRead() uint64

// Hart is the hardware thread running the calling goroutine.
//
// The goroutine should be locked to its OS thread, and the OS thread to
// its hart, for the whole sequence of calls.
type Hart struct{}

var _ hart.Hart = Hart{}

var stubs = map[asm.Insn]func(a0 uint64) uint64{
	asm.INSN_CEASE:               func(uint64) uint64 { cease(); return 0 },
	asm.INSN_PAUSE:               func(a0 uint64) uint64 { pause(); return a0 },
	asm.INSN_CFLUSH_D_L1:         func(a0 uint64) uint64 { cflushAll(); return a0 },
	asm.INSN_CFLUSH_D_L1_VA:      func(a0 uint64) uint64 { cflushVA(a0); return a0 },
	asm.INSN_CDISCARD_D_L1:       func(a0 uint64) uint64 { cdiscardAll(); return a0 },
	asm.INSN_CDISCARD_D_L1_VA:    func(a0 uint64) uint64 { cdiscardVA(a0); return a0 },
	asm.INSN_MNRET:               func(uint64) uint64 { mnret(); return 0 },
	register.INSN_MBPM_READ:      func(uint64) uint64 { return mbpmRead() },
	register.INSN_MBPM_SET_BDP:   func(a0 uint64) uint64 { mbpmSetBdp(); return a0 },
	register.INSN_MBPM_CLEAR_BDP: func(a0 uint64) uint64 { mbpmClearBdp(); return a0 },
	register.INSN_MFEATURE_CLEAR: func(a0 uint64) uint64 { mfeatureClear(a0); return a0 },
	register.INSN_MNEPC_READ:     func(uint64) uint64 { return mnepcRead() },
	register.INSN_MNEPC_WRITE:    func(a0 uint64) uint64 { mnepcWrite(a0); return a0 },
	register.INSN_MNCAUSE_READ:   func(uint64) uint64 { return mncauseRead() },
}

// Execute runs insn on the current hart.
func (Hart) Execute(insn uint32, a0 uint64) (rd uint64) {
	stub, ok := stubs[asm.Insn(insn)]
	if !ok {
		panic(fmt.Sprintf("native: no stub for %08x '%v'", insn, asm.Insn(insn)))
	}

	return stub(a0)
}
