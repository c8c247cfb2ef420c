// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"iter"
	"maps"

	"github.com/ezrec/sifive/hart"
)

var _asm_defines = map[string]uint64{
	"INSN_CEASE":            uint64(INSN_CEASE),
	"INSN_PAUSE":            uint64(INSN_PAUSE),
	"INSN_CFLUSH_D_L1":      uint64(INSN_CFLUSH_D_L1),
	"INSN_CFLUSH_D_L1_VA":   uint64(INSN_CFLUSH_D_L1_VA),
	"INSN_CDISCARD_D_L1":    uint64(INSN_CDISCARD_D_L1),
	"INSN_CDISCARD_D_L1_VA": uint64(INSN_CDISCARD_D_L1_VA),
	"INSN_MNRET":            uint64(INSN_MNRET),
}

// Defines returns the instruction word names.
func Defines() iter.Seq2[string, uint64] {
	return maps.All(_asm_defines)
}

// Halt issues CEASE. It never returns.
//
// After CEASE retires, the hart retires no further instructions until
// reset, and starts the power-down sequence that eventually signals the
// outside of the core complex that it is safe to power down. CEASE has
// no effect on system bus access, and debug halt requests no longer work.
//
// Only available in M-mode. The caller must have released every resource
// it owns; nothing runs afterwards.
func Halt(h hart.Hart) {
	h.Execute(uint32(INSN_CEASE), 0)
	panic(ErrNoReturn)
}

// Pause issues the PAUSE hint for spin-wait loops.
//
// PAUSE is a FENCE with predecessor set W and null successor set, so it
// executes as a no-op on every RISC-V implementation and in every
// privilege mode. SiFive cores stall for up to 32 cycles or until a cache
// eviction occurs, whichever comes first.
func Pause(h hart.Hart) {
	h.Execute(uint32(INSN_PAUSE), 0)
}

// FlushDataCacheAll issues CFLUSH.D.L1 x0, writing back and invalidating
// every line of the L1 data cache.
//
// Only available in M-mode. Supported by all Performance and Intelligence
// cores, and by the Essential U7, U5, S7 and E7 series. Elsewhere an
// illegal-instruction exception is raised.
func FlushDataCacheAll(h hart.Hart) {
	h.Execute(uint32(INSN_CFLUSH_D_L1), 0)
}

// FlushDataCacheLine issues CFLUSH.D.L1 a0, writing back and invalidating
// the L1 data cache line containing va.
//
// Only available in M-mode. If the effective privilege mode cannot write
// va, a store access or store page-fault exception is raised. If va is in
// an uncacheable region with write permission the instruction has no
// effect and raises nothing. If PMP write-protects only part of the line,
// a va in the protected part faults, while a va in the writable part
// writes back the entire line.
//
// Supported by P550, P550-MC, S76, S76-MC, E76 and E76-MC.
func FlushDataCacheLine(h hart.Hart, va uint64) {
	h.Execute(uint32(INSN_CFLUSH_D_L1_VA), va)
}

// DiscardDataCacheAll issues CDISCARD.D.L1 x0, invalidating every line of
// the L1 data cache without write-back. Dirty data is lost.
//
// Same privilege and platform support as FlushDataCacheAll.
func DiscardDataCacheAll(h hart.Hart) {
	h.Execute(uint32(INSN_CDISCARD_D_L1), 0)
}

// DiscardDataCacheLine issues CDISCARD.D.L1 a0, invalidating the L1 data
// cache line containing va without write-back. Dirty data in the line is
// lost.
//
// Same privilege and address rules as FlushDataCacheLine. Supported by all
// Performance and Intelligence cores, and by the Essential U7, U5, S7 and
// E7 series.
func DiscardDataCacheLine(h hart.Hart, va uint64) {
	h.Execute(uint32(INSN_CDISCARD_D_L1_VA), va)
}

// NmiReturn issues MNRET. It never returns to the caller.
//
// Control transfers to the PC and privilege mode saved on NMI entry, and
// NMIs are enabled again. Only valid in M-mode from inside an NMI handler;
// anywhere else the behavior is undefined.
func NmiReturn(h hart.Hart) {
	h.Execute(uint32(INSN_MNRET), 0)
	panic(ErrNoReturn)
}

// Listing returns the disassembly of every fixed word issued by this package.
func Listing() iter.Seq2[Insn, string] {
	words := []Insn{
		INSN_CEASE,
		INSN_PAUSE,
		INSN_CFLUSH_D_L1,
		INSN_CFLUSH_D_L1_VA,
		INSN_CDISCARD_D_L1,
		INSN_CDISCARD_D_L1_VA,
		INSN_MNRET,
	}
	return func(yield func(insn Insn, text string) bool) {
		for _, insn := range words {
			if !yield(insn, insn.String()) {
				return
			}
		}
	}
}
