// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm encodes and issues the SiFive custom machine-mode instructions.
//
// Each operation is a single instruction word handed to a hart.Hart. The
// words are fixed by the silicon: CEASE, PAUSE, CFLUSH.D.L1, CDISCARD.D.L1
// and MNRET. The address forms of the cache instructions carry the virtual
// address in a0 (x10), which is encoded in the rs1 field (bits 19:15).
//
// No operation checks privilege mode or platform support. An instruction
// the running core does not implement raises an illegal-instruction
// exception, and an address the effective privilege mode cannot write
// raises a store access or store page-fault exception. Both are delivered
// to the trap handler of the execution environment.
//
// The package also encodes the Zicsr instructions used by the register
// package, and disassembles every word it can produce.
package asm
