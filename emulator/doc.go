// Package emulator simulates a single SiFive hart executing the custom
// instruction and CSR words.
//
// The Emulator implements hart.Hart, so the asm, register and feature
// packages run against it unchanged. It models the privilege mode, the
// integer registers, the custom CSRs, the branch target buffer and return
// address stack, a write-back L1 data cache, PMP-style memory regions and
// the resumable NMI entry/return sequence.
//
// Traps are delivered the way hardware delivers them: to the installed
// TrapHandler, or, without one, by unwinding to the nearest Run or RaiseNmi.
package emulator
