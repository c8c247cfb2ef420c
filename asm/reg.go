package asm

// Reg is an integer register index, x0 to x31.
type Reg int

//go:generate go tool stringer -linecomment -type=Reg
const (
	ZERO = Reg(0)  // zero
	RA   = Reg(1)  // ra
	SP   = Reg(2)  // sp
	GP   = Reg(3)  // gp
	TP   = Reg(4)  // tp
	T0   = Reg(5)  // t0
	T1   = Reg(6)  // t1
	T2   = Reg(7)  // t2
	S0   = Reg(8)  // s0
	S1   = Reg(9)  // s1
	A0   = Reg(10) // a0
	A1   = Reg(11) // a1
	A2   = Reg(12) // a2
	A3   = Reg(13) // a3
	A4   = Reg(14) // a4
	A5   = Reg(15) // a5
	A6   = Reg(16) // a6
	A7   = Reg(17) // a7
	S2   = Reg(18) // s2
	S3   = Reg(19) // s3
	S4   = Reg(20) // s4
	S5   = Reg(21) // s5
	S6   = Reg(22) // s6
	S7   = Reg(23) // s7
	S8   = Reg(24) // s8
	S9   = Reg(25) // s9
	S10  = Reg(26) // s10
	S11  = Reg(27) // s11
	T3   = Reg(28) // t3
	T4   = Reg(29) // t4
	T5   = Reg(30) // t5
	T6   = Reg(31) // t6
)

// ADDRESS_REG carries the address operand of the cache instructions.
const ADDRESS_REG = A0

// Valid returns true if the index names one of x0 to x31.
func (r Reg) Valid() bool {
	return r >= ZERO && r <= T6
}
