package feature

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockHart struct {
	insns []uint32
	a0s   []uint64
}

func (mh *mockHart) Execute(insn uint32, a0 uint64) uint64 {
	mh.insns = append(mh.insns, insn)
	mh.a0s = append(mh.a0s, a0)
	return a0
}

var allFlags = []Mask{
	DCACHE_CLOCK_GATING,
	ICACHE_CLOCK_GATING,
	PIPELINE_CLOCK_GATING,
	SPECULATIVE_ICACHE_REFILL,
	CORRUPT_SIGNAL_GRANTDATA,
	SHORT_FORWARD_BRANCH_OPTIMIZE,
	ICACHE_NEXT_LINE_PREFETCH,
}

// subsets returns every subset of the known flags.
func subsets() (masks []Mask) {
	for n := range 1 << len(allFlags) {
		var m Mask
		for i, flag := range allFlags {
			if n&(1<<i) != 0 {
				m |= flag
			}
		}
		masks = append(masks, m)
	}
	return
}

func TestMask_Bits(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint64(1<<0), DCACHE_CLOCK_GATING.Bits())
	assert.Equal(uint64(1<<1), ICACHE_CLOCK_GATING.Bits())
	assert.Equal(uint64(1<<2), PIPELINE_CLOCK_GATING.Bits())
	assert.Equal(uint64(1<<3), SPECULATIVE_ICACHE_REFILL.Bits())
	assert.Equal(uint64(1<<9), CORRUPT_SIGNAL_GRANTDATA.Bits())
	assert.Equal(uint64(1<<16), SHORT_FORWARD_BRANCH_OPTIMIZE.Bits())
	assert.Equal(uint64(1<<17), ICACHE_NEXT_LINE_PREFETCH.Bits())
	assert.Equal(uint64(0x3_020f), MASK_ALL.Bits())
}

func TestMask_Algebra(t *testing.T) {
	assert := assert.New(t)

	masks := subsets()
	assert.Len(masks, 128)

	for _, a := range masks {
		assert.Equal(MASK_NONE, a.Intersect(MASK_NONE))
		assert.Equal(a, a.Union(MASK_NONE))
		assert.Equal(a, a.Union(a))
		assert.Equal(a, a.Intersect(a))
		assert.Equal(a, a.Not().Not())
		assert.Equal(MASK_ALL, a.Union(a.Not()))
		assert.Equal(MASK_NONE, a.Intersect(a.Not()))
		assert.True(a.Valid())
		assert.True(a.Not().Valid())

		for _, b := range masks {
			assert.Equal(a, a.Union(b).Intersect(a))
			assert.Equal(a.Union(b), b.Union(a))
			assert.Equal(a.Intersect(b), b.Intersect(a))
			assert.True(a.Union(b).Contains(a))
			assert.Equal(a.Difference(b), a.Intersect(b.Not()))

			// Set some bits, clear them again.
			assert.Equal(a.Difference(b), a.Union(b).Difference(b))
		}
	}
}

func TestMask_Not(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(MASK_ALL, MASK_NONE.Not())
	assert.Equal(MASK_NONE, MASK_ALL.Not())
	assert.Equal(MASK_ALL&^DCACHE_CLOCK_GATING, DCACHE_CLOCK_GATING.Not())

	// Unused bits never appear.
	assert.Zero(Mask(0xffff_0000_0000_0000).Not() &^ MASK_ALL)
}

func TestMask_All(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(allFlags, slices.Collect(MASK_ALL.All()))
	assert.Empty(slices.Collect(MASK_NONE.All()))

	m := CORRUPT_SIGNAL_GRANTDATA | DCACHE_CLOCK_GATING
	assert.Equal([]Mask{DCACHE_CLOCK_GATING, CORRUPT_SIGNAL_GRANTDATA}, slices.Collect(m.All()))

	for range m.All() {
		break
	}
}

func TestMask_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0", MASK_NONE.String())
	assert.Equal("DCACHE_CLOCK_GATING", DCACHE_CLOCK_GATING.String())
	assert.Equal("DCACHE_CLOCK_GATING|PIPELINE_CLOCK_GATING|CORRUPT_SIGNAL_GRANTDATA",
		(DCACHE_CLOCK_GATING | PIPELINE_CLOCK_GATING | CORRUPT_SIGNAL_GRANTDATA).String())
	assert.Equal("ICACHE_NEXT_LINE_PREFETCH|0x100000", (ICACHE_NEXT_LINE_PREFETCH | Mask(1<<20)).String())
	assert.False((ICACHE_NEXT_LINE_PREFETCH | Mask(1<<20)).Valid())
}

func TestParseMask(t *testing.T) {
	assert := assert.New(t)

	for _, m := range subsets() {
		parsed, err := ParseMask(m.String())
		assert.NoError(err)
		assert.Equal(m, parsed)
	}

	m, err := ParseMask(" dcache_clock_gating | MASK_ALL ")
	assert.NoError(err)
	assert.Equal(MASK_ALL, m)

	m, err = ParseMask("")
	assert.NoError(err)
	assert.Equal(MASK_NONE, m)

	_, err = ParseMask("DCACHE_CLOCK_GATING|WARP_DRIVE")
	assert.Equal(ErrFeatureUnknown("WARP_DRIVE"), err)
}

func TestEnable(t *testing.T) {
	assert := assert.New(t)

	mh := &mockHart{}

	// Enabling bits {0, 2, 9} clears exactly those three bits.
	mask := DCACHE_CLOCK_GATING | PIPELINE_CLOCK_GATING | CORRUPT_SIGNAL_GRANTDATA
	Enable(mh, mask)

	assert.Equal([]uint32{0x7C153073}, mh.insns)
	assert.Equal([]uint64{(1 << 0) | (1 << 2) | (1 << 9)}, mh.a0s)
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]uint64{}
	for name, value := range Defines() {
		defines[name] = value
	}

	assert.Len(defines, len(allFlags)+1)
	for _, flag := range allFlags {
		assert.Equal(flag.Bits(), defines[flag.String()])
	}
	assert.Equal(MASK_ALL.Bits(), defines["MASK_ALL"])
}

func TestEnable_UnknownBits(t *testing.T) {
	assert := assert.New(t)

	mh := &mockHart{}

	Enable(mh, Mask(1<<4|1<<63))
	Enable(mh, ICACHE_CLOCK_GATING|Mask(1<<5))

	assert.Equal([]uint32{0x7C153073, 0x7C153073}, mh.insns)
	assert.Equal([]uint64{0, uint64(ICACHE_CLOCK_GATING)}, mh.a0s)
}
