package panel

import (
	"fmt"

	"github.com/hacklab/ledwall/internal/frame"
)

const (
	// ScanLines is the multiplexing factor: 11 row groups selected via the
	// address lines.
	ScanLines = 11

	// ShiftLength is the length of the panel's shift registers. It exceeds
	// the 88-pixel width; the surplus columns shift inert padding.
	ShiftLength = 256

	// rowsPerScan and chain2Offset map a scan address to buffer rows:
	// chain 1 shows row scan*8, chain 2 the row 44 below it. Rows beyond the
	// buffer shift dark padding.
	rowsPerScan  = 8
	chain2Offset = 44
)

// Multiplexer shifts one scanline's column data out across the six parallel
// data lines.
type Multiplexer struct {
	bus *Bus
	enc *Encoder
}

// NewMultiplexer returns a multiplexer over the given bus and encoder.
func NewMultiplexer(bus *Bus, enc *Encoder) *Multiplexer {
	return &Multiplexer{bus: bus, enc: enc}
}

// ShiftRow drives one scanline activation for the given PWM plane: it
// asserts the address lines with scan, shifts ShiftLength columns with one
// multiplex clock pulse each, and latches the data to the output drivers.
// The caller holds the row on afterwards for the plane's duration.
//
// A scan address outside [0,ScanLines) is a programming error and panics:
// driving out-of-range address lines puts the panel in an undefined state,
// so the engine halts instead.
func (m *Multiplexer) ShiftRow(fb *frame.PixelBuffer, sched *Schedule, scan, plane int) error {
	if scan < 0 || scan >= ScanLines {
		panic(fmt.Sprintf("panel: scan address %d outside 0..%d", scan, ScanLines-1))
	}
	if err := m.bus.SetAddress(scan); err != nil {
		return err
	}

	row1 := scan * rowsPerScan
	row2 := row1 + chain2Offset

	for col := 0; col < ShiftLength; col++ {
		var bits [6]bool
		if col < frame.Width {
			if row1 < frame.Height {
				px := &fb[row1][col]
				bits[0] = sched.Bit(px[0], plane)
				bits[1] = sched.Bit(px[1], plane)
				bits[2] = sched.Bit(px[2], plane)
			}
			if row2 < frame.Height {
				px := &fb[row2][col]
				bits[3] = sched.Bit(px[0], plane)
				bits[4] = sched.Bit(px[1], plane)
				bits[5] = sched.Bit(px[2], plane)
			}
		}
		if err := m.bus.SetData(bits); err != nil {
			return err
		}
		if err := m.bus.PulseGClk(); err != nil {
			return err
		}
	}

	return m.enc.Send(Latch)
}
