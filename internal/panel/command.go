package panel

import (
	"errors"
	"fmt"
)

// Command is one of the five panel commands, sent as a fixed number of data
// clock pulses while latch enable is held high. The set is closed; the pulse
// mapping is part of the panel protocol and never changes at runtime.
type Command uint8

const (
	Latch       Command = iota // strobe shifted data to the output drivers
	VSync                      // swap the panel's internal display buffers
	WriteConfig                // write the configuration register
	Reset                      // reset the panel
	PreActive                  // arm a configuration write
)

var pulseCounts = [...]int{
	Latch:       1,
	VSync:       2,
	WriteConfig: 4,
	Reset:       10,
	PreActive:   14,
}

// Pulses returns the data clock pulse count encoding c. It panics on a value
// outside the closed command set: an unknown command is a programming error
// and must never reach the control lines.
func (c Command) Pulses() int {
	if int(c) >= len(pulseCounts) {
		panic(fmt.Sprintf("panel: unknown command %d", c))
	}
	return pulseCounts[c]
}

func (c Command) String() string {
	switch c {
	case Latch:
		return "Latch"
	case VSync:
		return "VSync"
	case WriteConfig:
		return "WriteConfig"
	case Reset:
		return "Reset"
	case PreActive:
		return "PreActive"
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// ConfigWord is the panel configuration register. It is writable only while
// the panel is armed by a Reset then PreActive pair.
type ConfigWord uint16

const (
	CfgOutputEnable ConfigWord = 1 << 0 // enable the output drivers
	CfgPWM16        ConfigWord = 1 << 1 // 16-bit PWM mode
	CfgGainShift               = 2
	CfgGainMask     ConfigWord = 0b111 << CfgGainShift // current gain, 111 = max
)

// DefaultConfig enables output, 16-bit PWM and maximum current gain.
func DefaultConfig() ConfigWord {
	return CfgOutputEnable | CfgPWM16 | CfgGainMask
}

// ErrConfigNotArmed is returned when a configuration write is attempted
// outside a Reset then PreActive sequence.
var ErrConfigNotArmed = errors.New("panel: configuration write outside Reset/PreActive sequence")

type seqState uint8

const (
	seqIdle seqState = iota
	seqReset
	seqArmed
)

// Encoder turns commands into pulse sequences on the LE and DClk lines. Its
// only state beyond the lines themselves is the Reset→PreActive gate that
// protects the configuration register.
type Encoder struct {
	bus *Bus
	seq seqState
}

// NewEncoder returns an encoder over the given bus.
func NewEncoder(bus *Bus) *Encoder {
	return &Encoder{bus: bus}
}

// Send emits c: latch enable up, the mandated number of data clock pulses,
// latch enable down. Sending WriteConfig while the panel is not armed is
// rejected; the encoder reissues Reset so the caller restarts the sequence
// from a known state.
func (e *Encoder) Send(c Command) error {
	switch c {
	case Reset:
		e.seq = seqReset
	case PreActive:
		if e.seq == seqReset {
			e.seq = seqArmed
		} else {
			e.seq = seqIdle
		}
	case WriteConfig:
		if e.seq != seqArmed {
			if err := e.emit(Reset); err != nil {
				return err
			}
			e.seq = seqReset
			return ErrConfigNotArmed
		}
		e.seq = seqIdle
	default:
		// Any intervening command breaks the arm.
		e.seq = seqIdle
	}
	return e.emit(c)
}

func (e *Encoder) emit(c Command) error {
	if err := e.bus.SetLE(true); err != nil {
		return err
	}
	for i := 0; i < c.Pulses(); i++ {
		if err := e.bus.PulseDClk(); err != nil {
			return err
		}
	}
	return e.bus.SetLE(false)
}

// SendConfig writes w to the panel configuration register: the WriteConfig
// command, then the 16 register bits shifted MSB-first on the chain 1 red
// line, then Latch. Requires an armed encoder; see Send.
func (e *Encoder) SendConfig(w ConfigWord) error {
	if err := e.Send(WriteConfig); err != nil {
		return err
	}
	for bit := 15; bit >= 0; bit-- {
		var bits [6]bool
		bits[0] = w&(1<<bit) != 0
		if err := e.bus.SetData(bits); err != nil {
			return err
		}
		if err := e.bus.PulseDClk(); err != nil {
			return err
		}
	}
	return e.Send(Latch)
}
