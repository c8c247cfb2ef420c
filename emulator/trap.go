package emulator

// Privilege is a RISC-V privilege mode.
type Privilege int

//go:generate go tool stringer -linecomment -type=Privilege
const (
	PRIV_U = Privilege(0) // U
	PRIV_S = Privilege(1) // S
	PRIV_M = Privilege(3) // M
)

// TrapCause is a synchronous exception code.
type TrapCause int

//go:generate go tool stringer -linecomment -type=TrapCause
const (
	CAUSE_ILLEGAL_INSN     = TrapCause(2)  // illegal instruction
	CAUSE_STORE_ACCESS     = TrapCause(7)  // store access fault
	CAUSE_STORE_PAGE_FAULT = TrapCause(15) // store page fault
)
