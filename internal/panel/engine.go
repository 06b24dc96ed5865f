package panel

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/hacklab/ledwall/internal/frame"
)

// Engine is the real-time refresh loop. It owns the control lines for the
// lifetime of the process: after the one-time power-up sequence it sweeps
// every PWM plane over every scan address, reading intensities from the
// handoff's active buffer, and checks for a buffer swap once per frame.
//
// Timing budget per row activation: 256 multiplex clock pulses plus the
// plane's hold time. With the default 8 planes and 40µs base hold a frame
// costs about 11*(255*40µs) ≈ 112ms of hold alone, which is why the loop
// runs locked to an OS thread and never blocks on anything else.
type Engine struct {
	bus     *Bus
	enc     *Encoder
	mux     *Multiplexer
	sched   *Schedule
	handoff *frame.Handoff
	cfg     ConfigWord
	log     zerolog.Logger

	// FrameDone, when set, is called after each completed frame (VSync and
	// swap check included). Used by the simulator preview and the tests.
	FrameDone func()
}

// NewEngine wires a refresh engine over the given bus. The handoff is shared
// with the producer side; everything else is owned by the engine.
func NewEngine(bus *Bus, sched *Schedule, handoff *frame.Handoff, cfg ConfigWord, log zerolog.Logger) (*Engine, error) {
	if err := bus.Validate(); err != nil {
		return nil, err
	}
	enc := NewEncoder(bus)
	return &Engine{
		bus:     bus,
		enc:     enc,
		mux:     NewMultiplexer(bus, enc),
		sched:   sched,
		handoff: handoff,
		cfg:     cfg,
		log:     log,
	}, nil
}

// Run initializes the panel and refreshes it until ctx is cancelled. It is
// the timing-critical task of the process and must not be starved; the
// visible frame rate is set entirely by how fast this loop turns.
func (e *Engine) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := e.powerUp(); err != nil {
		return fmt.Errorf("panel power-up: %w", err)
	}
	e.log.Info().
		Int("planes", e.sched.Planes()).
		Dur("frame_budget", e.sched.FrameBudget()).
		Msg("panel initialized")

	for {
		select {
		case <-ctx.Done():
			e.log.Info().Msg("refresh loop stopping")
			return e.bus.AllLow()
		default:
		}

		fb := e.handoff.Active()
		for plane := 0; plane < e.sched.Planes(); plane++ {
			hold := e.sched.Hold(plane)
			for scan := 0; scan < ScanLines; scan++ {
				if err := e.mux.ShiftRow(fb, e.sched, scan, plane); err != nil {
					return fmt.Errorf("scanline %d plane %d: %w", scan, plane, err)
				}
				time.Sleep(hold)
			}
		}

		if err := e.enc.Send(VSync); err != nil {
			return fmt.Errorf("vsync: %w", err)
		}
		e.handoff.TrySwap()
		if e.FrameDone != nil {
			e.FrameDone()
		}
	}
}

// powerUp issues Reset, PreActive, WriteConfig exactly once, with the settle
// delays the panel needs after power-on.
func (e *Engine) powerUp() error {
	if err := e.bus.AllLow(); err != nil {
		return err
	}
	time.Sleep(100 * time.Millisecond)

	if err := e.enc.Send(Reset); err != nil {
		return err
	}
	time.Sleep(10 * time.Millisecond)

	if err := e.enc.Send(PreActive); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)

	return e.enc.SendConfig(e.cfg)
}
