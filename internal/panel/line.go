package panel

import "periph.io/x/conn/v3/gpio"

// Line is one digital control line of the panel. Implementations exist for
// periph.io pins, Linux GPIO character devices and an in-memory level used
// by the simulator and the tests.
type Line interface {
	// Set drives the line high or low.
	Set(high bool) error
}

type periphLine struct {
	p gpio.PinOut
}

func (l periphLine) Set(high bool) error {
	return l.p.Out(gpio.Level(high))
}

// PeriphLine wraps a periph.io output pin as a control line.
func PeriphLine(p gpio.PinOut) Line {
	return periphLine{p: p}
}

// MemLine is an in-memory line level. It never fails and is safe for the
// single-goroutine access pattern of the refresh engine.
type MemLine struct {
	High bool
}

func (l *MemLine) Set(high bool) error {
	l.High = high
	return nil
}
