package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPulseMapping(t *testing.T) {
	assert.Equal(t, 1, Latch.Pulses())
	assert.Equal(t, 2, VSync.Pulses())
	assert.Equal(t, 4, WriteConfig.Pulses())
	assert.Equal(t, 10, Reset.Pulses())
	assert.Equal(t, 14, PreActive.Pulses())
}

func TestUnknownCommandPanics(t *testing.T) {
	assert.Panics(t, func() { Command(9).Pulses() })
}

func TestSendEmitsExactPulseCounts(t *testing.T) {
	bus, rec := newRecorderBus()
	enc := NewEncoder(bus)

	for _, c := range []Command{Latch, VSync, Reset, PreActive} {
		assert.NoError(t, enc.Send(c))
	}
	assert.Equal(t, []int{1, 2, 10, 14}, rec.Commands)
	assert.False(t, rec.le, "latch enable must end low")
}

func TestWriteConfigRejectedWhenNotArmed(t *testing.T) {
	bus, rec := newRecorderBus()
	enc := NewEncoder(bus)

	err := enc.Send(WriteConfig)
	assert.ErrorIs(t, err, ErrConfigNotArmed)
	// The rejection falls back to a fresh Reset instead of emitting the
	// command.
	assert.Equal(t, []int{10}, rec.Commands)
}

func TestConfigWriteAfterResetPreActive(t *testing.T) {
	bus, rec := newRecorderBus()
	enc := NewEncoder(bus)

	assert.NoError(t, enc.Send(Reset))
	assert.NoError(t, enc.Send(PreActive))
	assert.NoError(t, enc.SendConfig(DefaultConfig()))

	assert.Equal(t, []int{10, 14, 4, 1}, rec.Commands)

	// 16 payload bits, MSB first: 0b0000_0000_0001_1111.
	assert.Len(t, rec.CfgBits, 16)
	for i, bit := range rec.CfgBits {
		assert.Equal(t, i >= 11, bit, "config bit %d", i)
	}
}

func TestInterveningCommandBreaksArm(t *testing.T) {
	bus, _ := newRecorderBus()
	enc := NewEncoder(bus)

	assert.NoError(t, enc.Send(Reset))
	assert.NoError(t, enc.Send(PreActive))
	assert.NoError(t, enc.Send(Latch))
	assert.ErrorIs(t, enc.SendConfig(DefaultConfig()), ErrConfigNotArmed)
}

func TestSecondConfigWriteNeedsRearm(t *testing.T) {
	bus, _ := newRecorderBus()
	enc := NewEncoder(bus)

	assert.NoError(t, enc.Send(Reset))
	assert.NoError(t, enc.Send(PreActive))
	assert.NoError(t, enc.SendConfig(DefaultConfig()))
	assert.ErrorIs(t, enc.SendConfig(DefaultConfig()), ErrConfigNotArmed)
}

func TestDefaultConfigWord(t *testing.T) {
	assert.Equal(t, ConfigWord(0b11111), DefaultConfig())
}
