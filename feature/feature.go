// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package feature names the SiFive feature-disable bits and enables them
// during boot.
package feature

import (
	"fmt"
	"iter"
	"maps"
	"math/bits"
	"strings"

	"github.com/ezrec/sifive/hart"
	"github.com/ezrec/sifive/register"
)

// Mask is a set of disableable microarchitectural features.
// Bit positions are fixed by hardware.
type Mask uint64

const (
	DCACHE_CLOCK_GATING           = Mask(1 << 0)  // Disable data cache clock gating.
	ICACHE_CLOCK_GATING           = Mask(1 << 1)  // Disable instruction cache clock gating.
	PIPELINE_CLOCK_GATING         = Mask(1 << 2)  // Disable pipeline clock gating.
	SPECULATIVE_ICACHE_REFILL     = Mask(1 << 3)  // Disable speculative instruction cache refill.
	CORRUPT_SIGNAL_GRANTDATA      = Mask(1 << 9)  // Suppress corrupt signal on GrantData messages.
	SHORT_FORWARD_BRANCH_OPTIMIZE = Mask(1 << 16) // Disable short forward branch optimization.
	ICACHE_NEXT_LINE_PREFETCH     = Mask(1 << 17) // Disable instruction cache next-line prefetcher.

	MASK_NONE = Mask(0)
	MASK_ALL  = DCACHE_CLOCK_GATING | ICACHE_CLOCK_GATING | PIPELINE_CLOCK_GATING |
		SPECULATIVE_ICACHE_REFILL | CORRUPT_SIGNAL_GRANTDATA |
		SHORT_FORWARD_BRANCH_OPTIMIZE | ICACHE_NEXT_LINE_PREFETCH
)

var _feature_name = map[Mask]string{
	DCACHE_CLOCK_GATING:           "DCACHE_CLOCK_GATING",
	ICACHE_CLOCK_GATING:           "ICACHE_CLOCK_GATING",
	PIPELINE_CLOCK_GATING:         "PIPELINE_CLOCK_GATING",
	SPECULATIVE_ICACHE_REFILL:     "SPECULATIVE_ICACHE_REFILL",
	CORRUPT_SIGNAL_GRANTDATA:      "CORRUPT_SIGNAL_GRANTDATA",
	SHORT_FORWARD_BRANCH_OPTIMIZE: "SHORT_FORWARD_BRANCH_OPTIMIZE",
	ICACHE_NEXT_LINE_PREFETCH:     "ICACHE_NEXT_LINE_PREFETCH",
}

var _feature_defines = map[string]uint64{
	"MASK_ALL": uint64(MASK_ALL),
}

func init() {
	for mask, name := range _feature_name {
		_feature_defines[name] = uint64(mask)
	}
}

// Defines returns the feature names and their bit values.
func Defines() iter.Seq2[string, uint64] {
	return maps.All(_feature_defines)
}

// Bits returns the raw bit pattern.
func (m Mask) Bits() uint64 {
	return uint64(m)
}

// Union returns the features in either mask.
func (m Mask) Union(other Mask) Mask {
	return m | other
}

// Intersect returns the features in both masks.
func (m Mask) Intersect(other Mask) Mask {
	return m & other
}

// Difference returns the features in m that are not in other.
func (m Mask) Difference(other Mask) Mask {
	return m &^ other
}

// Not returns every known feature that is not in m.
// Bits outside MASK_ALL stay zero.
func (m Mask) Not() Mask {
	return ^m & MASK_ALL
}

// Contains returns true if every feature of other is in m.
func (m Mask) Contains(other Mask) bool {
	return m&other == other
}

// Empty returns true if the mask has no features.
func (m Mask) Empty() bool {
	return m == MASK_NONE
}

// Valid returns true if the mask only has known features.
func (m Mask) Valid() bool {
	return m&^MASK_ALL == 0
}

// All returns each feature of the mask, lowest bit first.
func (m Mask) All() iter.Seq[Mask] {
	return func(yield func(Mask) bool) {
		for rest := m; rest != 0; rest &= rest - 1 {
			if !yield(Mask(1) << bits.TrailingZeros64(uint64(rest))) {
				return
			}
		}
	}
}

// String returns the feature names joined with '|'.
// Unknown bits are rendered in hex.
func (m Mask) String() string {
	if m.Empty() {
		return "0"
	}

	var names []string
	for flag := range m.All() {
		name, ok := _feature_name[flag]
		if !ok {
			name = fmt.Sprintf("0x%x", uint64(flag))
		}
		names = append(names, name)
	}

	return strings.Join(names, "|")
}

// ParseMask parses feature names joined with '|'.
// "0" and the empty string are the empty mask, "MASK_ALL" every feature.
func ParseMask(text string) (m Mask, err error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "0" {
		return
	}

	for word := range strings.SplitSeq(text, "|") {
		word = strings.TrimSpace(word)
		value, ok := _feature_defines[strings.ToUpper(word)]
		if !ok {
			err = ErrFeatureUnknown(word)
			return
		}
		m |= Mask(value)
	}

	return
}

// Enable turns on the features in mask by clearing their bits in the
// feature-disable register.
//
// Bits outside MASK_ALL are never cleared.
//
// Must run in M-mode, normally from the bootloader.
func Enable(h hart.Hart, mask Mask) {
	register.ClearFeatures(h, mask.Intersect(MASK_ALL))
}
