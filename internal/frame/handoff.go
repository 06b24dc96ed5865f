package frame

import "sync/atomic"

// Handoff owns the process's two pixel buffers and exchanges their
// active/pending roles between the producer (text renderer) and the consumer
// (refresh engine). The roles and the dirty flag live in a single packed
// atomic word, so neither side ever takes a lock or sees a half-written
// frame:
//
//   - the consumer only reads the buffer tagged active,
//   - the producer only writes the buffer tagged pending,
//   - TrySwap flips the tag in one compare-and-swap, and only when the
//     producer has marked a completed write (dirty).
//
// Write assumes a single producer at a time; callers with concurrent
// producers serialize among themselves (see display.Service).
type Handoff struct {
	bufs  [2]PixelBuffer
	state atomic.Uint32 // bit 0: index of the active buffer, bit 1: dirty
}

const dirtyBit = 0b10

// NewHandoff returns a handoff with both buffers dark and buffer 0 active.
func NewHandoff() *Handoff {
	return &Handoff{}
}

// Active returns the buffer currently tagged active. The refresh path treats
// it as read-only; it stays stable until the next accepted TrySwap.
func (h *Handoff) Active() *PixelBuffer {
	return &h.bufs[h.state.Load()&1]
}

// Write fills the pending buffer via fill and then marks it ready in one
// atomic store. A not-yet-consumed previous write is discarded first
// (last-write-wins): clearing the dirty flag up front guarantees the
// consumer cannot swap roles while fill is still running.
func (h *Handoff) Write(fill func(*PixelBuffer)) {
	for {
		s := h.state.Load()
		if s&dirtyBit == 0 {
			break
		}
		if h.state.CompareAndSwap(s, s&^dirtyBit) {
			break
		}
	}
	// With dirty clear the consumer never swaps, so the active index is
	// stable from here until the store below.
	active := h.state.Load() & 1
	fill(&h.bufs[active^1])
	h.state.Store(active | dirtyBit)
}

// TrySwap exchanges the active/pending roles iff a completed write is
// waiting, clearing the dirty flag in the same atomic step. It never blocks;
// when the flag is clear (or a new write raced in and withdrew it) the call
// is a no-op and reports false. The refresh engine calls this only at a
// full-frame boundary.
func (h *Handoff) TrySwap() bool {
	s := h.state.Load()
	if s&dirtyBit == 0 {
		return false
	}
	return h.state.CompareAndSwap(s, (s&1)^1)
}
