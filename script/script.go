// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script runs Starlark firmware scenarios against a hart.
//
// A scenario is a Starlark file calling builtins that issue the custom
// instructions and CSR accesses, for example:
//
//	enable_features(DCACHE_CLOCK_GATING | ICACHE_CLOCK_GATING)
//	bpm_static_taken()
//	flush_dcache(0x80000040)
//	if nmi_cause_supported():
//	    print(nmi_cause())
//	halt()
//
// Feature flags, CSR addresses, instruction words and NMI cause codes are
// predeclared. Harts that model memory or NMIs (such as the emulator) add
// the store_byte, load_byte and raise_nmi builtins.
package script

import (
	"fmt"
	"io"
	"iter"
	"log"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/sifive/asm"
	"github.com/ezrec/sifive/feature"
	"github.com/ezrec/sifive/hart"
	"github.com/ezrec/sifive/internal"
	"github.com/ezrec/sifive/register"
)

// Memory is a hart with byte-addressed memory.
type Memory interface {
	Store(addr uint64, value byte) error
	Load(addr uint64) (byte, error)
}

// NmiRaiser is a hart that can deliver an NMI to a handler.
type NmiRaiser interface {
	RaiseNmi(cause register.NmiCause, handler func()) error
}

// Definer is a hart that supplies its own predeclared names.
type Definer interface {
	Defines() iter.Seq2[string, uint64]
}

// Script is the execution context of a scenario.
type Script struct {
	Verbose bool      // If set, logs each builtin call.
	Hart    hart.Hart // Hart the builtins issue instructions on.
	Output  io.Writer // Destination of print(), os.Stdout if nil.
}

// Predeclared returns the names visible to a scenario.
func (s *Script) Predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	defines := internal.IterSeq2Concat(asm.Defines(),
		register.Defines(),
		feature.Defines(),
	)
	if definer, ok := s.Hart.(Definer); ok {
		defines = definer.Defines()
	}

	for name, value := range defines {
		pred[name] = starlark.MakeUint64(value)
	}

	builtins := map[string]func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error){
		"halt":                s.halt,
		"pause":               s.pause,
		"flush_dcache":        s.flushDcache,
		"discard_dcache":      s.discardDcache,
		"nmi_return":          s.nmiReturn,
		"bpm_read":            s.bpmRead,
		"bpm_static_taken":    s.bpmStaticTaken,
		"bpm_dynamic":         s.bpmDynamic,
		"enable_features":     s.enableFeatures,
		"mnepc_read":          s.mnepcRead,
		"mnepc_write":         s.mnepcWrite,
		"nmi_cause":           s.nmiCause,
		"nmi_cause_supported": s.nmiCauseSupported,
	}

	if _, ok := s.Hart.(Memory); ok {
		builtins["store_byte"] = s.storeByte
		builtins["load_byte"] = s.loadByte
	}

	if _, ok := s.Hart.(NmiRaiser); ok {
		builtins["raise_nmi"] = s.raiseNmi
	}

	for name, fn := range builtins {
		pred[name] = starlark.NewBuiltin(name, fn)
	}

	return
}

// Run executes a scenario. src is as for starlark.ExecFileOptions: nil to
// read filename, or a string, []byte or io.Reader.
//
// Instructions that never return, and traps the hart does not handle,
// unwind through Run to the caller.
func (s *Script) Run(filename string, src any) (globals starlark.StringDict, err error) {
	out := s.Output
	if out == nil {
		out = os.Stdout
	}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(out, msg)
		},
	}

	opts := syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
	}

	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, s.Predeclared())
	return
}

func (s *Script) trace(b *starlark.Builtin, args starlark.Tuple) {
	if s.Verbose {
		log.Printf("script: %v%v", b.Name(), args)
	}
}

// uint64Of converts an optional integer argument.
func uint64Of(b *starlark.Builtin, arg string, v starlark.Value) (value uint64, err error) {
	i, ok := v.(starlark.Int)
	if ok {
		value, ok = i.Uint64()
	}
	if !ok {
		err = ErrValue{Builtin: b.Name(), Arg: arg, Kind: "an unsigned 64-bit integer"}
	}
	return
}

func (s *Script) halt(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	s.trace(b, args)
	asm.Halt(s.Hart)
	return starlark.None, nil
}

func (s *Script) pause(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	s.trace(b, args)
	asm.Pause(s.Hart)
	return starlark.None, nil
}

// cacheOp issues the full-cache form without an address, or the line form.
func (s *Script) cacheOp(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, all func(hart.Hart), line func(hart.Hart, uint64)) (starlark.Value, error) {
	var va starlark.Value = starlark.None
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "va?", &va); err != nil {
		return nil, err
	}
	s.trace(b, args)

	if va == starlark.None {
		all(s.Hart)
		return starlark.None, nil
	}

	addr, err := uint64Of(b, "va", va)
	if err != nil {
		return nil, err
	}
	line(s.Hart, addr)

	return starlark.None, nil
}

func (s *Script) flushDcache(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return s.cacheOp(b, args, kwargs, asm.FlushDataCacheAll, asm.FlushDataCacheLine)
}

func (s *Script) discardDcache(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return s.cacheOp(b, args, kwargs, asm.DiscardDataCacheAll, asm.DiscardDataCacheLine)
}

func (s *Script) nmiReturn(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	s.trace(b, args)
	asm.NmiReturn(s.Hart)
	return starlark.None, nil
}

func (s *Script) bpmRead(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	s.trace(b, args)
	return starlark.Bool(register.ReadMbpm(s.Hart).Bdp()), nil
}

func (s *Script) bpmStaticTaken(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	s.trace(b, args)
	register.SetStaticTaken(s.Hart)
	return starlark.None, nil
}

func (s *Script) bpmDynamic(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	s.trace(b, args)
	register.SetDynamic(s.Hart)
	return starlark.None, nil
}

// enableFeatures takes a mask as an integer or as '|' separated names.
func (s *Script) enableFeatures(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var arg starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "mask", &arg); err != nil {
		return nil, err
	}
	s.trace(b, args)

	var mask feature.Mask
	switch v := arg.(type) {
	case starlark.String:
		parsed, err := feature.ParseMask(string(v))
		if err != nil {
			return nil, err
		}
		mask = parsed
	default:
		bits, err := uint64Of(b, "mask", arg)
		if err != nil {
			return nil, err
		}
		mask = feature.Mask(bits)
		if !mask.Valid() {
			return nil, feature.ErrFeatureUnknown(mask.Difference(feature.MASK_ALL).String())
		}
	}

	feature.Enable(s.Hart, mask)

	return starlark.None, nil
}

func (s *Script) mnepcRead(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	s.trace(b, args)
	return starlark.MakeUint64(register.ReadMnepc(s.Hart)), nil
}

func (s *Script) mnepcWrite(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var arg starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &arg); err != nil {
		return nil, err
	}
	s.trace(b, args)

	value, err := uint64Of(b, "value", arg)
	if err != nil {
		return nil, err
	}
	register.WriteMnepc(s.Hart, value)

	return starlark.None, nil
}

// nmiCause returns the cause name, or None without cause reporting.
func (s *Script) nmiCause(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	s.trace(b, args)

	cause, ok := register.ReadNmiCause(s.Hart)
	if !ok {
		return starlark.None, nil
	}
	return starlark.String(cause.String()), nil
}

func (s *Script) nmiCauseSupported(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	s.trace(b, args)
	return starlark.Bool(register.NmiCauseSupported(s.Hart)), nil
}

func (s *Script) storeByte(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addrArg starlark.Value
	var value int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addrArg, "value", &value); err != nil {
		return nil, err
	}
	s.trace(b, args)

	if value < 0 || value > 0xff {
		return nil, ErrValue{Builtin: b.Name(), Arg: "value", Kind: "a byte"}
	}

	addr, err := uint64Of(b, "addr", addrArg)
	if err != nil {
		return nil, err
	}

	mem, ok := s.Hart.(Memory)
	if !ok {
		return nil, ErrUnsupported(b.Name())
	}

	return starlark.None, mem.Store(addr, byte(value))
}

func (s *Script) loadByte(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addrArg starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addrArg); err != nil {
		return nil, err
	}
	s.trace(b, args)

	addr, err := uint64Of(b, "addr", addrArg)
	if err != nil {
		return nil, err
	}

	mem, ok := s.Hart.(Memory)
	if !ok {
		return nil, ErrUnsupported(b.Name())
	}

	value, err := mem.Load(addr)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt(int(value)), nil
}

// raiseNmi delivers an NMI with fn as the handler. fn must call nmi_return().
func (s *Script) raiseNmi(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var cause int
	var fn starlark.Callable
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "cause", &cause, "handler", &fn); err != nil {
		return nil, err
	}
	s.trace(b, args)

	if _, ok := register.DecodeNmiCause(uint64(cause)); cause < 0 || !ok {
		return nil, ErrValue{Builtin: b.Name(), Arg: "cause", Kind: "an nmi cause"}
	}

	raiser, ok := s.Hart.(NmiRaiser)
	if !ok {
		return nil, ErrUnsupported(b.Name())
	}

	var callErr error
	err := raiser.RaiseNmi(register.NmiCause(cause), func() {
		_, callErr = starlark.Call(thread, fn, nil, nil)
	})
	if callErr != nil {
		return nil, callErr
	}
	if err != nil {
		return nil, err
	}

	return starlark.None, nil
}
