// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"

	"github.com/ezrec/sifive/asm"
	"github.com/ezrec/sifive/emulator"
	"github.com/ezrec/sifive/feature"
	"github.com/ezrec/sifive/internal"
	"github.com/ezrec/sifive/register"
	"github.com/ezrec/sifive/script"
)

func main() {
	var core string
	var verbose bool
	var list bool
	var disasm bool
	var scenario string

	flag.StringVar(&core, "c", env.Str("SIFIVE_CORE", "U74"), "Core profile ($SIFIVE_CORE)")
	flag.BoolVar(&verbose, "v", env.Bool("SIFIVE_VERBOSE"), "Verbose mode ($SIFIVE_VERBOSE)")
	flag.BoolVar(&list, "l", false, "List instruction encodings and predeclared names")
	flag.BoolVar(&disasm, "x", false, "Disassemble hex instruction words given as arguments")
	flag.StringVar(&scenario, "s", "", ".star scenario to run on the emulator")

	flag.Parse()

	if !disasm && flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if !list && !disasm && len(scenario) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if list {
		for insn, text := range asm.Listing() {
			fmt.Printf("%08x %v\n", uint32(insn), text)
		}
		for insn := range register.Accesses() {
			fmt.Printf("%08x %v\n", uint32(insn), insn)
		}

		defines := internal.IterSeq2Concat(asm.Defines(), register.Defines(), feature.Defines())
		for name, value := range internal.IterSeq2Sorted(defines) {
			fmt.Printf("%v = 0x%x\n", name, value)
		}
	}

	if disasm {
		for _, arg := range flag.Args() {
			word, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(arg), "0x"), 16, 32)
			if err != nil {
				log.Fatalf("%v: %v", arg, err)
			}
			insn := asm.Insn(word)
			fmt.Printf("%08x %v\n", uint32(insn), insn)
		}
	}

	if len(scenario) != 0 {
		profile, err := emulator.LookupCore(core)
		if err != nil {
			log.Fatalf("%v: %v (known: %v)", os.Args[0], err, strings.Join(emulator.CoreNames(), ", "))
		}

		emu := emulator.NewEmulator(profile)
		emu.Verbose = verbose

		s := &script.Script{
			Verbose: verbose,
			Hart:    emu,
			Output:  os.Stdout,
		}

		var serr error
		err = emu.Run(func() {
			_, serr = s.Run(scenario, nil)
		})
		if err == nil {
			err = serr
		}

		for n, insn := range emu.Trace {
			fmt.Printf("%4d: %08x %v\n", n, uint32(insn), insn)
		}

		if verbose {
			fmt.Print(emu)
		}

		if err != nil && !errors.Is(err, emulator.ErrHalted) {
			log.Fatalf("%v: %v", scenario, err)
		}
	}
}
