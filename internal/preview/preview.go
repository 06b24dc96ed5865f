// Package preview mirrors the active pixel buffer onto a periph.io
// display.Drawer, used for the terminal simulator and the websocket frame
// feed.
package preview

import (
	"context"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"

	"github.com/hacklab/ledwall/internal/frame"
)

// Image converts a pixel buffer to an 8-bit RGBA image, keeping the top
// byte of each 16-bit channel.
func Image(fb *frame.PixelBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			px := fb[y][x]
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(px[0] >> 8),
				G: uint8(px[1] >> 8),
				B: uint8(px[2] >> 8),
				A: 0xFF,
			})
		}
	}
	return img
}

// Mirror periodically draws snapshots of the active buffer to a drawer.
type Mirror struct {
	drawer display.Drawer
	active func() *frame.PixelBuffer
}

// NewTerminal returns a mirror over the console screen device, the same
// fallback used when no panel hardware is reachable.
func NewTerminal(active func() *frame.PixelBuffer) *Mirror {
	return &Mirror{drawer: screen.New(frame.Height), active: active}
}

// NewMirror returns a mirror over an arbitrary drawer.
func NewMirror(d display.Drawer, active func() *frame.PixelBuffer) *Mirror {
	return &Mirror{drawer: d, active: active}
}

// Draw renders one snapshot. Snapshots read the active buffer without
// synchronization; a frame swapped mid-read can tear, which is acceptable
// for a preview and never touches the refresh path.
func (m *Mirror) Draw() error {
	img := Image(m.active())
	return m.drawer.Draw(m.drawer.Bounds(), img, image.Point{})
}

// Run redraws at the given interval until ctx is cancelled.
func (m *Mirror) Run(ctx context.Context, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			_ = m.Draw()
		}
	}
}
