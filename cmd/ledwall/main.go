package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/hacklab/ledwall/internal/config"
	"github.com/hacklab/ledwall/internal/display"
	"github.com/hacklab/ledwall/internal/frame"
	"github.com/hacklab/ledwall/internal/panel"
	"github.com/hacklab/ledwall/internal/preview"
	"github.com/hacklab/ledwall/internal/server"
)

func main() {
	var (
		addr       = flag.String("addr", "", "HTTP listen address (overrides config)")
		backend    = flag.String("backend", "", "line backend: periph | cdev | sim (overrides config)")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		bootText   = flag.String("text", "", "text to display at startup (overrides config)")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
	} else {
		cfg = c
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *bootText != "" {
		cfg.BootText = *bootText
	}
	if *simOnly {
		cfg.Backend = "sim"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	bus, simulated := buildBus(cfg)
	if cfg.GClkHz > 0 && !simulated {
		bus.ClockDelay = time.Duration(int64(time.Second)/int64(cfg.GClkHz)) / 2
	}

	sched, err := panel.NewSchedule(cfg.Planes, time.Duration(cfg.BaseHoldUs)*time.Microsecond)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid PWM schedule")
	}

	handoff := frame.NewHandoff()
	eng, err := panel.NewEngine(bus, sched, handoff, panel.DefaultConfig(), log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("engine setup failed")
	}

	disp := display.New(handoff, log.Logger)
	if cfg.BootText != "" {
		_ = disp.SetText(cfg.BootText)
	}

	srv := server.New(disp, handoff.Active, log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engineErr := make(chan error, 1)
	go func() { engineErr <- eng.Run(ctx) }()
	go srv.RunPreview(ctx, 100*time.Millisecond)
	if simulated {
		mirror := preview.NewTerminal(handoff.Active)
		go mirror.Run(ctx, 100*time.Millisecond)
	}

	httpSrv := &http.Server{
		Addr:        cfg.Addr,
		Handler:     srv.Routes(),
		ReadTimeout: 5 * time.Second,
		// No write timeout: /ws connections stay open.
	}
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("backend", cfg.Backend).Msg("ledwall listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-engineErr:
		if err != nil {
			log.Error().Err(err).Msg("refresh engine failed")
		}
		stop()
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutCtx)
}

// buildBus selects the line backend, falling back to simulation when the
// hardware path is unavailable so the daemon stays reachable over HTTP.
func buildBus(cfg *config.Config) (*panel.Bus, bool) {
	switch cfg.Backend {
	case "periph":
		bus, err := periphBus(&cfg.Pins)
		if err != nil {
			log.Warn().Err(err).Msg("periph backend unavailable; falling back to simulation")
			return panel.NewMemBus(), true
		}
		return bus, false
	case "cdev":
		bus, err := cdevBus(&cfg.Cdev)
		if err != nil {
			log.Warn().Err(err).Msg("gpio character device unavailable; falling back to simulation")
			return panel.NewMemBus(), true
		}
		return bus, false
	default:
		return panel.NewMemBus(), true
	}
}

func periphBus(p *config.Pins) (*panel.Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	lookup := func(name string) (panel.Line, error) {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, &missingPinError{name: name}
		}
		return panel.PeriphLine(pin), nil
	}
	var (
		bus panel.Bus
		err error
	)
	if bus.GClk, err = lookup(p.GClk); err != nil {
		return nil, err
	}
	if bus.DClk, err = lookup(p.DClk); err != nil {
		return nil, err
	}
	if bus.LE, err = lookup(p.LE); err != nil {
		return nil, err
	}
	for i, name := range p.Addr {
		if bus.Addr[i], err = lookup(name); err != nil {
			return nil, err
		}
	}
	for i, name := range p.Chain1 {
		if bus.Data[i], err = lookup(name); err != nil {
			return nil, err
		}
	}
	for i, name := range p.Chain2 {
		if bus.Data[3+i], err = lookup(name); err != nil {
			return nil, err
		}
	}
	return &bus, nil
}

func cdevBus(p *config.CdevPins) (*panel.Bus, error) {
	var (
		bus panel.Bus
		err error
	)
	if bus.GClk, err = panel.CdevLine(p.Chip, p.GClk); err != nil {
		return nil, err
	}
	if bus.DClk, err = panel.CdevLine(p.Chip, p.DClk); err != nil {
		return nil, err
	}
	if bus.LE, err = panel.CdevLine(p.Chip, p.LE); err != nil {
		return nil, err
	}
	for i, off := range p.Addr {
		if bus.Addr[i], err = panel.CdevLine(p.Chip, off); err != nil {
			return nil, err
		}
	}
	for i, off := range p.Chain1 {
		if bus.Data[i], err = panel.CdevLine(p.Chip, off); err != nil {
			return nil, err
		}
	}
	for i, off := range p.Chain2 {
		if bus.Data[3+i], err = panel.CdevLine(p.Chip, off); err != nil {
			return nil, err
		}
	}
	return &bus, nil
}

type missingPinError struct {
	name string
}

func (e *missingPinError) Error() string {
	return "gpio pin " + e.name + " not found"
}
