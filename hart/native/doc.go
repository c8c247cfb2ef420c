// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package native issues the instruction words on the running riscv64 hart.
//
// Go has no inline assembly, so each word is carried by its own assembly
// stub with the exact encoding as a WORD directive. Operands travel in a0
// (x10), matching the rs1 field of the address forms. Only words known to
// the asm and register packages are available; any other word panics.
//
// The stubs run machine-mode instructions. Outside of M-mode firmware they
// raise illegal-instruction exceptions, which the Go runtime reports as
// SIGILL.
package native
