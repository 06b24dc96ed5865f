//go:build !linux

package panel

import "fmt"

func CdevLine(chip string, offset int) (Line, error) {
	return nil, fmt.Errorf("gpio character device backend not supported on this platform")
}
