package asm

import (
	"fmt"
)

// String disassembles the word.
//
// The SiFive custom instructions and the Zicsr instructions are rendered
// as mnemonics; any other word is rendered as a .word directive.
func (insn Insn) String() string {
	switch insn {
	case INSN_CEASE:
		return "cease"
	case INSN_PAUSE:
		return "pause"
	case INSN_MNRET:
		return "mnret"
	}

	if base, rs1, ok := insn.CacheOp(); ok {
		mnemonic := "cflush.d.l1"
		if base == INSN_CDISCARD_D_L1 {
			mnemonic = "cdiscard.d.l1"
		}
		return fmt.Sprintf("%v %v", mnemonic, rs1)
	}

	if op, ok := insn.CsrOp(); ok {
		fl := insn.Fields()
		if op.Immediate() {
			return fmt.Sprintf("%v %v, 0x%03x, %d", op, fl.Rd, fl.Csr, int(fl.Rs1))
		}
		return fmt.Sprintf("%v %v, 0x%03x, %v", op, fl.Rd, fl.Csr, fl.Rs1)
	}

	return fmt.Sprintf(".word 0x%08x", uint32(insn))
}
