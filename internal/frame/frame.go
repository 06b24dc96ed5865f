// Package frame holds the panel's pixel storage and the producer/consumer
// buffer handoff.
package frame

// Panel geometry. The panel is a fixed 88x88 RGB matrix; nothing in this
// module supports other sizes.
const (
	Width  = 88
	Height = 88
)

// PixelBuffer is one full panel image, 16 bits per color channel,
// indexed [row][column][channel] with channel order R, G, B.
type PixelBuffer [Height][Width][3]uint16

// SetPixel sets one pixel. Out-of-range coordinates are ignored.
func (b *PixelBuffer) SetPixel(x, y int, r, g, bl uint16) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	b[y][x] = [3]uint16{r, g, bl}
}

// Fill sets every pixel to the given color.
func (b *PixelBuffer) Fill(r, g, bl uint16) {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			b[y][x] = [3]uint16{r, g, bl}
		}
	}
}

// FillRect fills the inclusive rectangle (x1,y1)-(x2,y2), clamped to the
// panel bounds.
func (b *PixelBuffer) FillRect(x1, y1, x2, y2 int, r, g, bl uint16) {
	if x2 >= Width {
		x2 = Width - 1
	}
	if y2 >= Height {
		y2 = Height - 1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			b.SetPixel(x, y, r, g, bl)
		}
	}
}

// Clear turns every pixel off.
func (b *PixelBuffer) Clear() {
	*b = PixelBuffer{}
}
