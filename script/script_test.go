package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sifive/asm"
	"github.com/ezrec/sifive/emulator"
	"github.com/ezrec/sifive/feature"
	"github.com/ezrec/sifive/register"
)

// wordHart records words and keeps no state.
type wordHart struct {
	executed []asm.Insn
}

func (wh *wordHart) Execute(insn uint32, a0 uint64) uint64 {
	wh.executed = append(wh.executed, asm.Insn(insn))
	return a0
}

func newEmulator(t *testing.T, name string) *emulator.Emulator {
	core, err := emulator.LookupCore(name)
	if err != nil {
		t.Fatal(err)
	}
	return emulator.NewEmulator(core)
}

// run executes src on emu, returning print() output and the Run error.
func run(t *testing.T, emu *emulator.Emulator, src string) (output string, err error) {
	out := &strings.Builder{}
	s := &Script{Hart: emu, Output: out}

	var serr error
	err = emu.Run(func() {
		_, serr = s.Run("test.star", src)
	})
	if err == nil {
		err = serr
	}

	output = out.String()
	return
}

func TestPredeclared(t *testing.T) {
	assert := assert.New(t)

	common := []string{
		"halt", "pause", "flush_dcache", "discard_dcache", "nmi_return",
		"bpm_read", "bpm_static_taken", "bpm_dynamic", "enable_features",
		"mnepc_read", "mnepc_write", "nmi_cause", "nmi_cause_supported",
		"INSN_CEASE", "CSR_MBPM", "NMI_CAUSE_BUS_ERROR", "DCACHE_CLOCK_GATING",
	}
	extra := []string{"store_byte", "load_byte", "raise_nmi", "LINE_SIZE"}

	plain := (&Script{Hart: &wordHart{}}).Predeclared()
	for _, name := range common {
		assert.Contains(plain, name)
	}
	for _, name := range extra {
		assert.NotContains(plain, name)
	}

	emu := (&Script{Hart: newEmulator(t, "U74")}).Predeclared()
	for _, name := range append(common, extra...) {
		assert.Contains(emu, name)
	}
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "U74")

	out, err := run(t, emu, `
enable_features(DCACHE_CLOCK_GATING | PIPELINE_CLOCK_GATING)
bpm_static_taken()
print(bpm_read())
bpm_dynamic()
print(bpm_read())
pause()
discard_dcache(0x80000040)
flush_dcache()
mnepc_write(0x1234)
print("0x%x" % mnepc_read())
print(nmi_cause_supported(), nmi_cause())
halt()
print("unreachable")
`)
	assert.ErrorIs(err, emulator.ErrHalted)
	assert.True(emu.Halted())
	assert.Equal("True\nFalse\n0x1234\nFalse None\n", out)

	assert.Equal([]asm.Insn{
		register.INSN_MFEATURE_CLEAR,
		register.INSN_MBPM_SET_BDP,
		register.INSN_MBPM_READ,
		register.INSN_MBPM_CLEAR_BDP,
		register.INSN_MBPM_READ,
		asm.INSN_PAUSE,
		asm.INSN_CDISCARD_D_L1_VA,
		asm.INSN_CFLUSH_D_L1,
		register.INSN_MNEPC_WRITE,
		register.INSN_MNEPC_READ,
		register.INSN_MNCAUSE_READ,
		register.INSN_MNCAUSE_READ,
		asm.INSN_CEASE,
	}, emu.Trace)

	expected := feature.MASK_ALL.Difference(feature.DCACHE_CLOCK_GATING | feature.PIPELINE_CLOCK_GATING)
	assert.Equal(expected.Bits(), emu.Mfeature)
	assert.Equal(2, emu.BtbClears)
}

func TestRun_WordHart(t *testing.T) {
	assert := assert.New(t)

	wh := &wordHart{}
	s := &Script{Hart: wh, Output: &strings.Builder{}}

	_, err := s.Run("test.star", `
flush_dcache(va = 0x80000000)
discard_dcache()
enable_features(0x205)
`)
	assert.NoError(err)
	assert.Equal([]asm.Insn{
		asm.INSN_CFLUSH_D_L1_VA,
		asm.INSN_CDISCARD_D_L1,
		register.INSN_MFEATURE_CLEAR,
	}, wh.executed)

	// CEASE returning is a fault of the hart, not of the script.
	assert.PanicsWithValue(asm.ErrNoReturn, func() {
		_, _ = s.Run("halt.star", "halt()\n")
	})
}

func TestEnableFeatures_Names(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "U74")

	_, err := run(t, emu, `enable_features("dcache_clock_gating|ICACHE_CLOCK_GATING")`)
	assert.NoError(err)
	expected := feature.MASK_ALL.Difference(feature.DCACHE_CLOCK_GATING | feature.ICACHE_CLOCK_GATING)
	assert.Equal(expected.Bits(), emu.Mfeature)

	_, err = run(t, emu, `enable_features("WARP_DRIVE")`)
	assert.ErrorContains(err, feature.ErrFeatureUnknown("WARP_DRIVE").Error())
}

func TestEnableFeatures_UnknownBits(t *testing.T) {
	assert := assert.New(t)

	wh := &wordHart{}
	s := &Script{Hart: wh, Output: &strings.Builder{}}

	_, err := s.Run("test.star", "enable_features(0x10)\n")
	assert.ErrorContains(err, feature.ErrFeatureUnknown("0x10").Error())

	_, err = s.Run("test.star", "enable_features(ICACHE_CLOCK_GATING | (1 << 63))\n")
	assert.Error(err)

	assert.Empty(wh.executed)
}

func TestValues(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "U74")

	for _, src := range []string{
		"flush_dcache(-1)",
		"discard_dcache('a0')",
		"mnepc_write(1 << 64)",
		"enable_features(None)",
		"store_byte(0x80000000, 256)",
		"store_byte(0x80000000, -1)",
		"raise_nmi(-1, print)",
		"raise_nmi(0, print)",
		"raise_nmi(4, print)",
	} {
		_, err := run(t, emu, src)
		assert.ErrorContains(err, " is not ", src)
	}

	assert.Empty(emu.Trace)
	assert.Equal(uint64(0), emu.Mncause)
	assert.False(emu.InNmi())
	assert.Empty(emu.Memory)
}

func TestTrap(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "E31")

	out, err := run(t, emu, `
print("before")
flush_dcache()
print("after")
`)
	var trap *emulator.Trap
	assert.True(errors.As(err, &trap))
	assert.Equal(emulator.CAUSE_ILLEGAL_INSN, trap.Cause)
	assert.Equal(asm.INSN_CFLUSH_D_L1, trap.Insn)
	assert.Equal("before\n", out)
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "U74")

	out, err := run(t, emu, `
store_byte(0x80000041, 0x5a)
print(load_byte(0x80000041))
discard_dcache(0x80000040)
print(load_byte(0x80000041))
store_byte(0x80000041, 0xa5)
flush_dcache(0x80000040)
`)
	assert.NoError(err)
	assert.Equal("90\n0\n", out)
	assert.Equal(byte(0xa5), emu.Memory[0x80000041])

	_, err = run(t, emu, "store_byte(0x10000, 1)")
	assert.ErrorContains(err, emulator.ErrAddress(0x10000).Error())
}

func TestRaiseNmi(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "U74")

	out, err := run(t, emu, `
def handler():
    print(nmi_cause_supported(), nmi_cause())
    nmi_return()
    print("unreachable")

raise_nmi(NMI_CAUSE_BUS_ERROR, handler)
print("resumed")
`)
	assert.NoError(err)
	assert.Equal("True bus_error\nresumed\n", out)
	assert.False(emu.InNmi())

	emu = newEmulator(t, "U74")
	_, err = run(t, emu, `
def handler():
    pass

raise_nmi(NMI_CAUSE_RNMI_PIN, handler)
`)
	assert.ErrorContains(err, emulator.ErrNmiNoReturn.Error())

	emu = newEmulator(t, "U74")
	_, err = run(t, emu, `
def handler():
    fail("boom")

raise_nmi(NMI_CAUSE_RNMI_PIN, handler)
`)
	assert.ErrorContains(err, "boom")
}

func TestSyntaxError(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "U74")

	_, err := run(t, emu, "halt(\n")
	assert.Error(err)
	assert.Empty(emu.Trace)
}
