package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sifive/asm"
	"github.com/ezrec/sifive/register"
)

func TestNmi(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "U74")
	emu.Priv = PRIV_U

	assert.NoError(emu.Run(func() { asm.Pause(emu) }))
	pc := emu.Pc

	var cause register.NmiCause
	var ok, supported, after bool
	var mnepc uint64
	var priv Privilege

	err := emu.RaiseNmi(register.NMI_CAUSE_RNMI_PIN, func() {
		priv = emu.Priv
		cause, ok = register.ReadNmiCause(emu)
		supported = register.NmiCauseSupported(emu)
		mnepc = register.ReadMnepc(emu)
		asm.NmiReturn(emu)
		after = true
	})
	assert.NoError(err)

	assert.Equal(PRIV_M, priv)
	assert.True(ok)
	assert.True(supported)
	assert.Equal(register.NMI_CAUSE_RNMI_PIN, cause)
	assert.Equal(pc, mnepc)
	assert.False(after)

	// Control is back where the NMI hit, in the interrupted mode.
	assert.Equal(pc, emu.Pc)
	assert.Equal(PRIV_U, emu.Priv)
	assert.False(emu.InNmi())
}

func TestNmi_RedirectedReturn(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "U74")

	err := emu.RaiseNmi(register.NMI_CAUSE_BUS_ERROR, func() {
		register.WriteMnepc(emu, 0x8000_4000)
		asm.NmiReturn(emu)
	})
	assert.NoError(err)
	assert.Equal(uint64(0x8000_4000), emu.Pc)
}

func TestNmi_Masked(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "U74")

	var nested error
	err := emu.RaiseNmi(register.NMI_CAUSE_RNMI_PIN, func() {
		nested = emu.RaiseNmi(register.NMI_CAUSE_BUS_ERROR, func() {
			t.Fatal("nested nmi delivered")
		})
		asm.NmiReturn(emu)
	})
	assert.NoError(err)
	assert.ErrorIs(nested, ErrNmiMasked)

	// Unmasked again after MNRET.
	err = emu.RaiseNmi(register.NMI_CAUSE_BUS_ERROR, func() { asm.NmiReturn(emu) })
	assert.NoError(err)
}

func TestNmi_NoReturn(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "U74")

	emu.Priv = PRIV_U

	err := emu.RaiseNmi(register.NMI_CAUSE_RNMI_PIN, func() {})
	assert.ErrorIs(err, ErrNmiNoReturn)
	assert.True(emu.InNmi())
	assert.Equal(PRIV_M, emu.Priv)
	assert.Equal(NMI_VECTOR, emu.Pc)

	// Still inside the handler, so further NMIs are masked.
	called := false
	err = emu.RaiseNmi(register.NMI_CAUSE_BUS_ERROR, func() { called = true })
	assert.ErrorIs(err, ErrNmiMasked)
	assert.False(called)

	emu.Reset()
	assert.False(emu.InNmi())
}

func TestNmi_ReturnOutsideHandler(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "U74")

	err := emu.Run(func() { asm.NmiReturn(emu) })
	assert.ErrorIs(err, ErrNmiContext)

	emu.Priv = PRIV_S
	trap := trapOf(t, emu.Run(func() { asm.NmiReturn(emu) }))
	assert.Equal(CAUSE_ILLEGAL_INSN, trap.Cause)
}

func TestNmi_TrapInHandler(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "E31")

	err := emu.Run(func() {
		_ = emu.RaiseNmi(register.NMI_CAUSE_BUS_ERROR, func() {
			asm.FlushDataCacheAll(emu)
			asm.NmiReturn(emu)
		})
	})
	trap := trapOf(t, err)
	assert.Equal(CAUSE_ILLEGAL_INSN, trap.Cause)
	assert.Equal(NMI_VECTOR, trap.Pc)
}

func TestNmi_CauseUnsupported(t *testing.T) {
	assert := assert.New(t)

	core := *Cores["E21"]
	core.NmiCause = false
	emu := NewEmulator(&core)

	var ok, supported bool
	err := emu.RaiseNmi(register.NMI_CAUSE_RNMI_PIN, func() {
		_, ok = register.ReadNmiCause(emu)
		supported = register.NmiCauseSupported(emu)
		asm.NmiReturn(emu)
	})
	assert.NoError(err)
	assert.False(ok)
	assert.False(supported)
}

func TestNmi_Halted(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, "U74")
	assert.ErrorIs(emu.Run(func() { asm.Halt(emu) }), ErrHalted)

	err := emu.RaiseNmi(register.NMI_CAUSE_RNMI_PIN, func() {
		t.Fatal("nmi delivered to a halted hart")
	})
	assert.ErrorIs(err, ErrHalted)
}
