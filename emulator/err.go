package emulator

import (
	"errors"

	"github.com/ezrec/sifive/asm"
	"github.com/ezrec/sifive/translate"
)

var f = translate.From

var (
	// Emulator errors
	ErrHalted      = errors.New(f("hart halted"))
	ErrNmiMasked   = errors.New(f("nmi masked"))
	ErrNmiNoReturn = errors.New(f("nmi handler returned without mnret"))
	ErrNmiContext  = errors.New(f("mnret outside of nmi handler"))
)

type ErrCoreUnknown string

func (err ErrCoreUnknown) Error() string {
	return f("core '%v' unknown", string(err))
}

type ErrAddress uint64

func (err ErrAddress) Error() string {
	return f("address 0x%x not accessible", uint64(err))
}

// Trap is an exception raised by an executed instruction.
type Trap struct {
	Cause TrapCause // Exception cause.
	Tval  uint64    // Faulting address or instruction word.
	Pc    uint64    // Address of the trapping instruction.
	Insn  asm.Insn  // Trapping instruction.
}

func (trap *Trap) Error() string {
	return f("%v at pc 0x%x '%v' tval 0x%x", trap.Cause.String(), trap.Pc, trap.Insn.String(), trap.Tval)
}
