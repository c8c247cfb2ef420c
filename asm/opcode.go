package asm

// Insn is a 32-bit RISC-V instruction word.
type Insn uint32

// Field positions of the I-type SYSTEM encoding.
const (
	OPCODE_MASK  = Insn(0x7f)
	RD_SHIFT     = 7
	FUNCT3_SHIFT = 12
	RS1_SHIFT    = 15
	CSR_SHIFT    = 20

	RD_MASK     = Insn(0x1f << RD_SHIFT)
	FUNCT3_MASK = Insn(0x7 << FUNCT3_SHIFT)
	RS1_MASK    = Insn(0x1f << RS1_SHIFT)
	CSR_MASK    = Insn(0xfff << CSR_SHIFT)
)

// Major opcodes.
const (
	OPCODE_MISC_MEM = Insn(0x0f)
	OPCODE_SYSTEM   = Insn(0x73)
)

// SiFive custom instruction words.
const (
	INSN_CEASE         = Insn(0x30500073) // CEASE
	INSN_PAUSE         = Insn(0x0100000F) // PAUSE, FENCE w,0
	INSN_CFLUSH_D_L1   = Insn(0xFC000073) // CFLUSH.D.L1 x0
	INSN_CDISCARD_D_L1 = Insn(0xFC200073) // CDISCARD.D.L1 x0
	INSN_MNRET         = Insn(0x70200073) // MNRET

	INSN_CFLUSH_D_L1_VA   = INSN_CFLUSH_D_L1 + Insn(ADDRESS_REG)<<RS1_SHIFT   // CFLUSH.D.L1 a0
	INSN_CDISCARD_D_L1_VA = INSN_CDISCARD_D_L1 + Insn(ADDRESS_REG)<<RS1_SHIFT // CDISCARD.D.L1 a0
)

// CsrOp is the funct3 field of a Zicsr instruction.
type CsrOp int

//go:generate go tool stringer -linecomment -type=CsrOp
const (
	CSRRW  = CsrOp(1) // csrrw
	CSRRS  = CsrOp(2) // csrrs
	CSRRC  = CsrOp(3) // csrrc
	CSRRWI = CsrOp(5) // csrrwi
	CSRRSI = CsrOp(6) // csrrsi
	CSRRCI = CsrOp(7) // csrrci
)

// Valid returns true if the op is one of the six Zicsr operations.
func (op CsrOp) Valid() bool {
	return op >= CSRRW && op <= CSRRCI && op != 4
}

// Immediate returns true if the rs1 field is a 5-bit zero-extended immediate.
func (op CsrOp) Immediate() bool {
	return op >= CSRRWI
}

// MakeCflushDL1 encodes CFLUSH.D.L1 with the address in rs1.
// With rs1 set to ZERO the whole L1 data cache is flushed.
func MakeCflushDL1(rs1 Reg) Insn {
	return INSN_CFLUSH_D_L1 | (Insn(rs1)<<RS1_SHIFT)&RS1_MASK
}

// MakeCdiscardDL1 encodes CDISCARD.D.L1 with the address in rs1.
// With rs1 set to ZERO the whole L1 data cache is invalidated.
func MakeCdiscardDL1(rs1 Reg) Insn {
	return INSN_CDISCARD_D_L1 | (Insn(rs1)<<RS1_SHIFT)&RS1_MASK
}

// MakeCsr encodes a Zicsr instruction.
// For the immediate forms src is the 5-bit immediate, otherwise the rs1 index.
func MakeCsr(op CsrOp, rd Reg, csr uint16, src uint32) (insn Insn, err error) {
	if !op.Valid() {
		err = ErrCsrOp(op)
		return
	}

	insn = (Insn(csr)<<CSR_SHIFT)&CSR_MASK |
		(Insn(src)<<RS1_SHIFT)&RS1_MASK |
		Insn(op)<<FUNCT3_SHIFT |
		(Insn(rd)<<RD_SHIFT)&RD_MASK |
		OPCODE_SYSTEM
	return
}

// MustCsr is MakeCsr for operations known at compile time.
func MustCsr(op CsrOp, rd Reg, csr uint16, src uint32) Insn {
	insn, err := MakeCsr(op, rd, csr, src)
	if err != nil {
		panic(err)
	}
	return insn
}

// Fields of a decoded instruction word.
type Fields struct {
	Opcode Insn   // Major opcode, bits 6:0.
	Rd     Reg    // Destination register, bits 11:7.
	Funct3 int    // Function code, bits 14:12.
	Rs1    Reg    // Source register or immediate, bits 19:15.
	Csr    uint16 // CSR address or funct12, bits 31:20.
}

// Fields splits the word into its I-type fields.
func (insn Insn) Fields() Fields {
	return Fields{
		Opcode: insn & OPCODE_MASK,
		Rd:     Reg((insn & RD_MASK) >> RD_SHIFT),
		Funct3: int((insn & FUNCT3_MASK) >> FUNCT3_SHIFT),
		Rs1:    Reg((insn & RS1_MASK) >> RS1_SHIFT),
		Csr:    uint16((insn & CSR_MASK) >> CSR_SHIFT),
	}
}

// CacheOp returns the base word and the address register of a
// CFLUSH.D.L1 or CDISCARD.D.L1 instruction.
func (insn Insn) CacheOp() (base Insn, rs1 Reg, ok bool) {
	base = insn &^ RS1_MASK
	switch base {
	case INSN_CFLUSH_D_L1, INSN_CDISCARD_D_L1:
		rs1 = Reg((insn & RS1_MASK) >> RS1_SHIFT)
		ok = true
	default:
		base = 0
	}
	return
}

// CsrOp returns the Zicsr operation of a SYSTEM word.
func (insn Insn) CsrOp() (op CsrOp, ok bool) {
	if insn&OPCODE_MASK != OPCODE_SYSTEM {
		return
	}
	op = CsrOp((insn & FUNCT3_MASK) >> FUNCT3_SHIFT)
	ok = op.Valid()
	if !ok {
		op = 0
	}
	return
}
