package panel

import (
	"fmt"
	"time"
)

// MaxPlanes is the channel bit depth; a schedule never keeps more planes
// than there are bits.
const MaxPlanes = 16

// Schedule decomposes 16-bit channel intensities into binary-weighted
// exposure planes. Plane p carries bit (16-planes+p) of the channel value
// and is held on for base<<p, so the plane weights form the ratio
// 1:2:4:...:2^(planes-1). Fewer planes discard that many least-significant
// bits, trading color resolution for refresh rate.
type Schedule struct {
	planes int
	base   time.Duration
}

// NewSchedule builds a schedule with the given plane count and the hold
// duration of the least-significant plane.
func NewSchedule(planes int, base time.Duration) (*Schedule, error) {
	if planes < 1 || planes > MaxPlanes {
		return nil, fmt.Errorf("panel: plane count %d outside 1..%d", planes, MaxPlanes)
	}
	if base <= 0 {
		return nil, fmt.Errorf("panel: base hold %v must be positive", base)
	}
	return &Schedule{planes: planes, base: base}, nil
}

// Planes returns the number of subframe slots per frame.
func (s *Schedule) Planes() int {
	return s.planes
}

// Bit reports whether the channel value v lights its pixel during plane.
// An out-of-range plane is a programming error and panics: a malformed slot
// index must halt rather than drive an undefined exposure.
func (s *Schedule) Bit(v uint16, plane int) bool {
	if plane < 0 || plane >= s.planes {
		panic(fmt.Sprintf("panel: subframe slot %d outside 0..%d", plane, s.planes-1))
	}
	return v&(1<<(MaxPlanes-s.planes+plane)) != 0
}

// Hold returns the row on-time of plane.
func (s *Schedule) Hold(plane int) time.Duration {
	if plane < 0 || plane >= s.planes {
		panic(fmt.Sprintf("panel: subframe slot %d outside 0..%d", plane, s.planes-1))
	}
	return s.base << plane
}

// OnTime returns the summed exposure a channel value receives over one full
// frame. It is monotonic in v.
func (s *Schedule) OnTime(v uint16) time.Duration {
	var total time.Duration
	for p := 0; p < s.planes; p++ {
		if s.Bit(v, p) {
			total += s.Hold(p)
		}
	}
	return total
}

// FrameBudget returns the total hold time of one frame across all planes and
// scanlines, the lower bound on the frame period.
func (s *Schedule) FrameBudget() time.Duration {
	var perScan time.Duration
	for p := 0; p < s.planes; p++ {
		perScan += s.Hold(p)
	}
	return perScan * ScanLines
}
