// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package hart defines the single execution primitive used by the
// instruction and CSR layers.
//
// A Hart executes exactly one 32-bit instruction word on the calling
// hardware thread. Before execution the operand is placed in the
// designated argument register (x10, a0); after execution the value of
// a0 is returned. Every encoding in this module that carries a register
// operand names a0 explicitly, so the encoding never depends on the
// register allocation of the caller.
package hart

// OPERAND_REG is the index of the register carrying the operand (x10, a0).
const OPERAND_REG = 10

// Hart executes instruction words on a single hardware thread.
type Hart interface {
	// Execute runs insn with a0 set to the operand, and returns a0.
	//
	// Execute does not validate privilege or platform support. Traps
	// raised by the instruction are delivered to the trap handler of the
	// execution environment, not returned.
	Execute(insn uint32, a0 uint64) (rd uint64)
}
