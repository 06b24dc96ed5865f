//go:build linux

package panel

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

type cdevLine struct {
	l *gpiocdev.Line
}

func (l cdevLine) Set(high bool) error {
	v := 0
	if high {
		v = 1
	}
	return l.l.SetValue(v)
}

// CdevLine requests a GPIO character-device line as an output driven low and
// wraps it as a control line. Used on hosts (Pi 5 and newer kernels) where
// the periph.io pin path is unavailable.
func CdevLine(chip string, offset int) (Line, error) {
	l, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request %s line %d: %w", chip, offset, err)
	}
	return cdevLine{l: l}, nil
}
