package panel

import (
	"fmt"
	"time"
)

// Bus groups the 13 control lines of the panel:
//
//	GClk     multiplex clock, 256 pulses per scanline activation
//	DClk     data clock, combined with LE for commands
//	LE       latch enable
//	Addr     4-bit scanline address, A0..A3
//	Data     6 parallel data lines, chain 1 R,G,B then chain 2 R,G,B
//
// ClockDelay is the half-period inserted around each clock edge; zero means
// toggle as fast as the host allows.
type Bus struct {
	GClk Line
	DClk Line
	LE   Line
	Addr [4]Line
	Data [6]Line

	ClockDelay time.Duration
}

// Validate reports the first missing line, if any.
func (b *Bus) Validate() error {
	if b.GClk == nil || b.DClk == nil || b.LE == nil {
		return fmt.Errorf("panel: gclk, dclk and le lines are all required")
	}
	for i, l := range b.Addr {
		if l == nil {
			return fmt.Errorf("panel: address line A%d missing", i)
		}
	}
	for i, l := range b.Data {
		if l == nil {
			return fmt.Errorf("panel: data line %d missing", i)
		}
	}
	return nil
}

// NewMemBus returns a bus backed by in-memory lines, for simulation and
// tests.
func NewMemBus() *Bus {
	b := &Bus{
		GClk: &MemLine{},
		DClk: &MemLine{},
		LE:   &MemLine{},
	}
	for i := range b.Addr {
		b.Addr[i] = &MemLine{}
	}
	for i := range b.Data {
		b.Data[i] = &MemLine{}
	}
	return b
}

func (b *Bus) settle() {
	if b.ClockDelay > 0 {
		time.Sleep(b.ClockDelay)
	}
}

// PulseGClk emits one multiplex clock pulse.
func (b *Bus) PulseGClk() error {
	if err := b.GClk.Set(true); err != nil {
		return err
	}
	b.settle()
	if err := b.GClk.Set(false); err != nil {
		return err
	}
	b.settle()
	return nil
}

// PulseDClk emits one data clock pulse.
func (b *Bus) PulseDClk() error {
	if err := b.DClk.Set(true); err != nil {
		return err
	}
	b.settle()
	if err := b.DClk.Set(false); err != nil {
		return err
	}
	b.settle()
	return nil
}

// SetLE drives the latch enable line.
func (b *Bus) SetLE(high bool) error {
	return b.LE.Set(high)
}

// SetAddress asserts the 4 address lines with the low bits of v.
func (b *Bus) SetAddress(v int) error {
	for i, l := range b.Addr {
		if err := l.Set(v&(1<<i) != 0); err != nil {
			return err
		}
	}
	return nil
}

// SetData drives the six parallel data lines.
func (b *Bus) SetData(bits [6]bool) error {
	for i, l := range b.Data {
		if err := l.Set(bits[i]); err != nil {
			return err
		}
	}
	return nil
}

// AllLow drives every line low, the quiescent state at power-up and
// shutdown.
func (b *Bus) AllLow() error {
	lines := []Line{b.GClk, b.DClk, b.LE}
	lines = append(lines, b.Addr[:]...)
	lines = append(lines, b.Data[:]...)
	for _, l := range lines {
		if err := l.Set(false); err != nil {
			return err
		}
	}
	return nil
}
