// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/sifive/asm"
	"github.com/ezrec/sifive/feature"
	"github.com/ezrec/sifive/hart"
	"github.com/ezrec/sifive/internal"
	"github.com/ezrec/sifive/register"
)

const (
	PAUSE_STALL_TICKS = 32 // Longest stall of a PAUSE hint.

	RESET_VECTOR = uint64(0x0001_0000) // PC after reset.
	NMI_VECTOR   = uint64(0x0001_0100) // PC on NMI entry.
)

var _emulator_defines = map[string]uint64{
	"LINE_SIZE":         LINE_SIZE,
	"PAUSE_STALL_TICKS": PAUSE_STALL_TICKS,
	"PRIV_U":            uint64(PRIV_U),
	"PRIV_S":            uint64(PRIV_S),
	"PRIV_M":            uint64(PRIV_M),
}

// nmiReturn unwinds an NMI handler back to RaiseNmi.
type nmiReturn struct{}

var _ hart.Hart = (*Emulator)(nil)

// Emulator is the simulation context of a single SiFive hart.
type Emulator struct {
	Verbose bool  // Set to enable verbose logging.
	Core    *Core // Core profile.

	Priv  Privilege  // Current privilege mode.
	Reg   [32]uint64 // Integer registers.
	Pc    uint64     // Address of the next instruction.
	Ticks int        // Cycle counter.
	Trace []asm.Insn // Executed instruction words.

	Mbpm     uint64 // Branch prediction mode CSR.
	Mfeature uint64 // Feature disable CSR.
	Mnepc    uint64 // NMI exception PC CSR.
	Mncause  uint64 // NMI cause CSR.

	// Branch predictor state. No executed word trains the predictors;
	// callers seed them to observe what a bpm write clears.
	Btb       map[uint64]uint64 // Branch target buffer, by branch address.
	BtbClears int               // Number of times the BTB was cleared.
	Ras       []uint64          // Return address stack entries.

	Cache   Cache    // L1 data cache.
	Memory  Memory   // Backing store.
	Regions []Region // Memory regions, highest priority first.

	TrapHandler func(trap *Trap) // Trap handler, nil to unwind to Run.

	halted  bool
	inNmi   bool
	nmiPriv Privilege
}

// NewEmulator creates a new emulator for a core profile.
func NewEmulator(core *Core) (emu *Emulator) {
	emu = &Emulator{
		Core:    core,
		Memory:  Memory{},
		Regions: DefaultRegions(),
	}

	emu.Reset()

	return
}

// Defines returns an iterator over the names known to the emulator.
func (emu *Emulator) Defines() iter.Seq2[string, uint64] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		asm.Defines(),
		register.Defines(),
		feature.Defines(),
	)
}

// Reset the hart.
// - Enters M-mode at the reset vector.
// - Clears the registers, trace, branch predictors and cache.
// - Sets every implemented feature-disable bit.
// - Leaves memory and regions untouched.
func (emu *Emulator) Reset() {
	if emu.Verbose {
		log.Printf("emulator: reset %v", emu.Core.Name)
	}

	emu.Priv = PRIV_M
	clear(emu.Reg[:])
	emu.Pc = RESET_VECTOR
	emu.Ticks = 0
	emu.Trace = nil

	emu.Mbpm = 0
	emu.Mfeature = emu.Core.Features.Bits()
	emu.Mnepc = 0
	emu.Mncause = 0

	emu.Btb = map[uint64]uint64{}
	emu.BtbClears = 0
	emu.Ras = nil

	emu.Cache.Reset()

	emu.halted = false
	emu.inNmi = false
	emu.nmiPriv = PRIV_M
}

// Halted returns true once CEASE has retired.
func (emu *Emulator) Halted() bool {
	return emu.halted
}

// InNmi returns true while an NMI handler is active.
func (emu *Emulator) InNmi() bool {
	return emu.inNmi
}

// String returns the current hart state as a string.
func (emu *Emulator) String() (text string) {
	text += fmt.Sprintf("% 9s: %v\n", "core", emu.Core.Name)
	text += fmt.Sprintf("% 9s: %v\n", "priv", emu.Priv)
	text += fmt.Sprintf("% 9s: %08x_%08x\n", "pc", emu.Pc>>32, emu.Pc&0xffffffff)
	text += fmt.Sprintf("% 9s: %v\n", "ticks", emu.Ticks)
	text += fmt.Sprintf("% 9s: %x\n", "bpm", emu.Mbpm)
	text += fmt.Sprintf("% 9s: %v\n", "mfeature", feature.Mask(emu.Mfeature))
	text += fmt.Sprintf("% 9s: %x\n", "mnepc", emu.Mnepc)
	text += fmt.Sprintf("% 9s: %x\n", "mncause", emu.Mncause)
	text += fmt.Sprintf("% 9s: %v\n", "lines", len(emu.Cache.Lines))
	text += fmt.Sprintf("% 9s: %v\n", "halted", emu.halted)
	text += fmt.Sprintf("% 9s: %v\n", "nmi", emu.inNmi)
	return
}

// Execute runs a single instruction word with a0 set to the operand.
func (emu *Emulator) Execute(insn uint32, a0 uint64) (rd uint64) {
	if emu.halted {
		panic(ErrHalted)
	}

	word := asm.Insn(insn)

	emu.Reg[hart.OPERAND_REG] = a0
	emu.Trace = append(emu.Trace, word)
	emu.Ticks++

	if emu.Verbose {
		log.Printf("emulator: %08x: %08x %v", emu.Pc, insn, word)
	}

	emu.step(word)

	emu.Reg[asm.ZERO] = 0
	rd = emu.Reg[hart.OPERAND_REG]
	return
}

// Run calls fn, which issues instructions on the emulator.
// A halt returns ErrHalted, and an unhandled trap returns the *Trap.
func (emu *Emulator) Run(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var trap *Trap
		rerr, ok := r.(error)
		switch {
		case !ok:
			panic(r)
		case errors.As(rerr, &trap):
			err = trap
		case errors.Is(rerr, ErrHalted), errors.Is(rerr, ErrNmiContext):
			err = rerr
		default:
			panic(r)
		}
	}()

	fn()

	return
}

// RaiseNmi delivers a resumable NMI and runs handler as its trap handler.
//
// On entry the PC is saved in mnepc, the cause is written to mncause, the
// hart enters M-mode and further NMIs are masked. The handler must finish
// with MNRET, which restores the PC and privilege mode and unmasks NMIs.
//
// If the handler returns without MNRET (ErrNmiNoReturn), or a trap or halt
// unwinds through it, the hart stays inside the handler: M-mode, PC at
// NMI_VECTOR, NMIs masked. Every later RaiseNmi returns ErrNmiMasked until
// MNRET retires or the hart is reset.
func (emu *Emulator) RaiseNmi(cause register.NmiCause, handler func()) (err error) {
	if emu.halted {
		err = ErrHalted
		return
	}

	if emu.inNmi {
		err = ErrNmiMasked
		return
	}

	if emu.Verbose {
		log.Printf("emulator: nmi %v at pc %08x", cause, emu.Pc)
	}

	emu.Mnepc = emu.Pc
	emu.Mncause = register.MNCAUSE_INTERRUPT | uint64(cause)
	emu.nmiPriv = emu.Priv
	emu.Priv = PRIV_M
	emu.Pc = NMI_VECTOR
	emu.inNmi = true

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(nmiReturn); !ok {
			panic(r)
		}
	}()

	handler()

	err = ErrNmiNoReturn

	return
}

// Store writes a byte through the cache, as a store instruction would.
func (emu *Emulator) Store(addr uint64, value byte) (err error) {
	region, ok := emu.region(addr)
	if !ok || !region.Write || region.PageFault {
		err = ErrAddress(addr)
		return
	}

	if !region.Cacheable {
		emu.Memory[addr] = value
		return
	}

	line := emu.Cache.Fill(addr, emu.Memory)
	line.Data[addr-LineOf(addr)] = value
	line.Dirty = true

	return
}

// Load reads a byte through the cache, as a load instruction would.
func (emu *Emulator) Load(addr uint64) (value byte, err error) {
	region, ok := emu.region(addr)
	if !ok {
		err = ErrAddress(addr)
		return
	}

	if !region.Cacheable {
		value = emu.Memory[addr]
		return
	}

	line := emu.Cache.Fill(addr, emu.Memory)
	value = line.Data[addr-LineOf(addr)]

	return
}

// region returns the highest priority region containing addr.
func (emu *Emulator) region(addr uint64) (region Region, ok bool) {
	for _, region = range emu.Regions {
		if region.Contains(addr) {
			ok = true
			return
		}
	}

	region = Region{}
	return
}

// trap raises an exception for the instruction at pc.
func (emu *Emulator) trap(cause TrapCause, tval uint64, pc uint64, insn asm.Insn) {
	trap := &Trap{
		Cause: cause,
		Tval:  tval,
		Pc:    pc,
		Insn:  insn,
	}

	if emu.Verbose {
		log.Printf("emulator: trap: %v", trap)
	}

	if emu.TrapHandler == nil {
		panic(trap)
	}

	emu.TrapHandler(trap)
}

// step decodes and executes a single word.
func (emu *Emulator) step(insn asm.Insn) {
	pc := emu.Pc
	emu.Pc += 4

	switch insn {
	case asm.INSN_PAUSE:
		// A FENCE hint, legal in every mode.
		emu.Ticks += PAUSE_STALL_TICKS - 1
		return
	case asm.INSN_CEASE:
		if emu.Priv != PRIV_M {
			emu.trap(CAUSE_ILLEGAL_INSN, uint64(insn), pc, insn)
			return
		}
		if emu.Verbose {
			log.Printf("emulator: cease at pc %08x", pc)
		}
		emu.Pc = pc
		emu.halted = true
		panic(ErrHalted)
	case asm.INSN_MNRET:
		if emu.Priv != PRIV_M {
			emu.trap(CAUSE_ILLEGAL_INSN, uint64(insn), pc, insn)
			return
		}
		if !emu.inNmi {
			panic(ErrNmiContext)
		}
		emu.Pc = emu.Mnepc
		emu.Priv = emu.nmiPriv
		emu.inNmi = false
		panic(nmiReturn{})
	}

	if base, rs1, ok := insn.CacheOp(); ok {
		emu.cacheOp(pc, insn, base, rs1)
		return
	}

	if op, ok := insn.CsrOp(); ok {
		emu.csrOp(pc, insn, op)
		return
	}

	emu.trap(CAUSE_ILLEGAL_INSN, uint64(insn), pc, insn)
}

// cacheOp executes CFLUSH.D.L1 or CDISCARD.D.L1.
func (emu *Emulator) cacheOp(pc uint64, insn asm.Insn, base asm.Insn, rs1 asm.Reg) {
	discard := base == asm.INSN_CDISCARD_D_L1

	if emu.Priv != PRIV_M {
		emu.trap(CAUSE_ILLEGAL_INSN, uint64(insn), pc, insn)
		return
	}

	if rs1 == asm.ZERO {
		if !emu.Core.CacheAll {
			emu.trap(CAUSE_ILLEGAL_INSN, uint64(insn), pc, insn)
			return
		}
		if discard {
			emu.Cache.DiscardAll()
		} else {
			emu.Cache.FlushAll(emu.Memory)
		}
		return
	}

	if (discard && !emu.Core.CdiscardVA) || (!discard && !emu.Core.CflushVA) {
		emu.trap(CAUSE_ILLEGAL_INSN, uint64(insn), pc, insn)
		return
	}

	va := emu.Reg[rs1]
	region, ok := emu.region(va)
	switch {
	case !ok:
		emu.trap(CAUSE_STORE_ACCESS, va, pc, insn)
	case region.PageFault:
		emu.trap(CAUSE_STORE_PAGE_FAULT, va, pc, insn)
	case !region.Write:
		emu.trap(CAUSE_STORE_ACCESS, va, pc, insn)
	case !region.Cacheable:
		if emu.Verbose {
			log.Printf("emulator: %v: %08x uncacheable in %v", insn, va, region.Name)
		}
	case discard:
		emu.Cache.DiscardLine(va)
	default:
		emu.Cache.FlushLine(va, emu.Memory)
	}
}

// csrOp executes a Zicsr instruction.
func (emu *Emulator) csrOp(pc uint64, insn asm.Insn, op asm.CsrOp) {
	fl := insn.Fields()

	// CSR address bits 9:8 hold the lowest privilege that may access it.
	if Privilege((fl.Csr>>8)&3) > emu.Priv {
		emu.trap(CAUSE_ILLEGAL_INSN, uint64(insn), pc, insn)
		return
	}

	old, ok := emu.csrRead(fl.Csr)
	if !ok {
		emu.trap(CAUSE_ILLEGAL_INSN, uint64(insn), pc, insn)
		return
	}

	src := uint64(fl.Rs1)
	if !op.Immediate() {
		src = emu.Reg[fl.Rs1]
	}

	var value uint64
	write := true
	switch op {
	case asm.CSRRW, asm.CSRRWI:
		value = src
	case asm.CSRRS, asm.CSRRSI:
		value = old | src
		write = fl.Rs1 != asm.ZERO
	case asm.CSRRC, asm.CSRRCI:
		value = old &^ src
		write = fl.Rs1 != asm.ZERO
	}

	if write && !emu.csrWrite(fl.Csr, value) {
		emu.trap(CAUSE_ILLEGAL_INSN, uint64(insn), pc, insn)
		return
	}

	if fl.Rd != asm.ZERO {
		emu.Reg[fl.Rd] = old
	}
}

func (emu *Emulator) csrRead(csr uint16) (value uint64, ok bool) {
	ok = true
	switch csr {
	case register.CSR_MBPM:
		value = emu.Mbpm
	case register.CSR_MFEATURE:
		value = emu.Mfeature
	case register.CSR_MNEPC:
		value = emu.Mnepc
	case register.CSR_MNCAUSE:
		// Reads as zero without cause reporting.
		if emu.Core.NmiCause {
			value = emu.Mncause
		}
	default:
		ok = false
	}
	return
}

func (emu *Emulator) csrWrite(csr uint16, value uint64) (ok bool) {
	ok = true
	switch csr {
	case register.CSR_MBPM:
		emu.Mbpm = value & register.MBPM_BDP
		// Any write to bdp clears the BTB. The RAS is unaffected.
		clear(emu.Btb)
		emu.BtbClears++
	case register.CSR_MFEATURE:
		emu.Mfeature = value & emu.Core.Features.Bits()
	case register.CSR_MNEPC:
		emu.Mnepc = value
	default:
		ok = false
	}
	return
}
