// Package text rasterizes ASCII strings into panel pixel buffers using a
// fixed 5x7 glyph table.
package text

import (
	"strings"

	"github.com/hacklab/ledwall/internal/frame"
)

const (
	// Spacing is the blank column between glyphs.
	Spacing = 1

	// MaxChars is the most characters that fit one panel row at 5+1 pitch.
	MaxChars = frame.Width / (GlyphWidth + Spacing)

	// White, the only text color.
	intensity = 0xFFFF
)

// Render clears dst and draws msg left-aligned at column 0, vertically
// centered, in white. Lowercase folds to upper; characters without a glyph
// advance as blank columns; input beyond MaxChars is truncated. All content
// errors are absorbed here, never surfaced to the panel.
func Render(dst *frame.PixelBuffer, msg string) {
	dst.Clear()
	msg = strings.ToUpper(msg)
	if len(msg) > MaxChars {
		msg = msg[:MaxChars]
	}

	y0 := (frame.Height - GlyphHeight) / 2
	x := 0
	for _, r := range msg {
		if x+GlyphWidth > frame.Width {
			break
		}
		if g, ok := Glyph(r); ok {
			drawGlyph(dst, g, x, y0)
		}
		x += GlyphWidth + Spacing
	}
}

func drawGlyph(dst *frame.PixelBuffer, g [GlyphWidth]byte, x, y int) {
	for gx := 0; gx < GlyphWidth; gx++ {
		col := g[gx]
		for gy := 0; gy < GlyphHeight; gy++ {
			if col&(1<<gy) != 0 {
				dst.SetPixel(x+gx, y+gy, intensity, intensity, intensity)
			}
		}
	}
}
