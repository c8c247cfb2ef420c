// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package register accesses the SiFive custom machine-mode CSRs.
//
// Every access is one Zicsr instruction issued on a hart.Hart: reads are
// CSRRS with rs1 zero, writes are CSRRW, and bit updates are CSRRS/CSRRC
// (or their immediate forms) so the set or clear happens atomically in
// hardware. Nothing is cached; each call is a fresh hardware access.
//
// Accessing a CSR the running core does not implement, or accessing any of
// them outside M-mode, raises an illegal-instruction exception that is
// delivered to the trap handler of the execution environment.
package register
