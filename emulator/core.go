package emulator

import (
	"slices"
	"strings"

	"github.com/ezrec/sifive/feature"
)

// Core describes which custom instructions and CSR fields a core implements.
type Core struct {
	Name       string       // Core name.
	CacheAll   bool         // CFLUSH.D.L1 and CDISCARD.D.L1 with rs1 = x0.
	CflushVA   bool         // CFLUSH.D.L1 with rs1 != x0.
	CdiscardVA bool         // CDISCARD.D.L1 with rs1 != x0.
	NmiCause   bool         // mncause reports the NMI cause.
	Features   feature.Mask // Implemented feature-disable bits.
}

func essential(name string) *Core {
	return &Core{Name: name, NmiCause: true, Features: feature.MASK_ALL}
}

func cached(name string, cflushVA bool) *Core {
	core := essential(name)
	core.CacheAll = true
	core.CdiscardVA = true
	core.CflushVA = cflushVA
	return core
}

// Cores is the table of known core profiles.
var Cores = map[string]*Core{}

func init() {
	for _, core := range []*Core{
		essential("E20"),
		essential("E21"),
		essential("E24"),
		essential("E31"),
		essential("E34"),
		essential("S21"),
		essential("S51"),
		essential("S54"),
		cached("U54", false),
		cached("U54-MC", false),
		cached("U74", false),
		cached("U74-MC", false),
		cached("S76", true),
		cached("S76-MC", true),
		cached("E76", true),
		cached("E76-MC", true),
		cached("P270", false),
		cached("P270-MC", false),
		cached("P550", true),
		cached("P550-MC", true),
		cached("X280", false),
		cached("X280-MC", false),
	} {
		Cores[core.Name] = core
	}
}

// LookupCore finds a core profile by name, ignoring case.
func LookupCore(name string) (core *Core, err error) {
	core, ok := Cores[strings.ToUpper(name)]
	if !ok {
		err = ErrCoreUnknown(name)
	}
	return
}

// CoreNames returns the sorted core profile names.
func CoreNames() []string {
	names := make([]string, 0, len(Cores))
	for name := range Cores {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
