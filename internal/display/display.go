// Package display is the producer side of the panel: it turns network
// requests into rendered pending buffers.
package display

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/hacklab/ledwall/internal/frame"
	"github.com/hacklab/ledwall/internal/text"
)

// Service renders display requests into the buffer handoff. Each request
// runs to completion and returns; a newer completed write overwrites
// not-yet-consumed pending content (last-write-wins, no queue). The mutex
// only serializes concurrent producers against each other — the refresh
// path is never behind it.
type Service struct {
	mu      sync.Mutex
	handoff *frame.Handoff
	log     zerolog.Logger
}

// New returns a producer service over the shared handoff.
func New(h *frame.Handoff, log zerolog.Logger) *Service {
	return &Service{handoff: h, log: log}
}

// SetText rasterizes msg into the pending buffer and marks it ready for the
// next frame-boundary swap. Over-length input is truncated and unsupported
// characters render blank; neither is an error.
func (s *Service) SetText(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(msg) > text.MaxChars {
		s.log.Warn().Int("len", len(msg)).Msg("text truncated to panel width")
	}
	s.handoff.Write(func(b *frame.PixelBuffer) {
		text.Render(b, msg)
	})
	s.log.Info().Str("text", msg).Msg("display text updated")
	return nil
}

// Clear blanks the panel at the next swap. Always succeeds.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handoff.Write(func(b *frame.PixelBuffer) {
		b.Clear()
	})
	s.log.Info().Msg("display cleared")
	return nil
}
