// Package config loads the daemon configuration. Configuration is consumed
// at startup only; nothing is renegotiated at runtime.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pins names the 13 control lines for the periph backend, resolvable via
// gpioreg. Defaults follow the original controller wiring.
type Pins struct {
	GClk   string    `yaml:"gclk"`
	DClk   string    `yaml:"dclk"`
	LE     string    `yaml:"le"`
	Addr   [4]string `yaml:"addr"`
	Chain1 [3]string `yaml:"chain1"` // R, G, B
	Chain2 [3]string `yaml:"chain2"` // R, G, B
}

// CdevPins addresses the same lines as chip offsets for the GPIO
// character-device backend.
type CdevPins struct {
	Chip   string `yaml:"chip"`
	GClk   int    `yaml:"gclk"`
	DClk   int    `yaml:"dclk"`
	LE     int    `yaml:"le"`
	Addr   [4]int `yaml:"addr"`
	Chain1 [3]int `yaml:"chain1"`
	Chain2 [3]int `yaml:"chain2"`
}

type Config struct {
	Addr    string `yaml:"addr"`    // HTTP listen address
	Backend string `yaml:"backend"` // "periph" | "cdev" | "sim"

	Pins Pins     `yaml:"pins"`
	Cdev CdevPins `yaml:"cdev,omitempty"`

	Planes     int `yaml:"planes"`       // PWM bit planes, 1..16
	BaseHoldUs int `yaml:"base_hold_us"` // hold of the least-significant plane
	GClkHz     int `yaml:"gclk_hz"`      // multiplex clock rate; 0 = unthrottled

	BootText string `yaml:"boot_text,omitempty"`
}

// Default is the shipped configuration: the original controller pin map,
// 8 planes, 40µs base hold, ~1MHz multiplex clock.
func Default() *Config {
	return &Config{
		Addr:    ":8080",
		Backend: "periph",
		Pins: Pins{
			GClk:   "GPIO4",
			DClk:   "GPIO5",
			LE:     "GPIO18",
			Addr:   [4]string{"GPIO19", "GPIO21", "GPIO22", "GPIO23"},
			Chain1: [3]string{"GPIO25", "GPIO26", "GPIO27"},
			Chain2: [3]string{"GPIO32", "GPIO33", "GPIO13"},
		},
		Cdev: CdevPins{
			Chip:   "gpiochip0",
			GClk:   4,
			DClk:   5,
			LE:     18,
			Addr:   [4]int{19, 21, 22, 23},
			Chain1: [3]int{25, 26, 27},
			Chain2: [3]int{32, 33, 13},
		},
		Planes:     8,
		BaseHoldUs: 40,
		GClkHz:     1000000,
	}
}

// Load reads path and overlays it on the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes c to path.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate rejects values the panel driver cannot run with.
func (c *Config) Validate() error {
	switch c.Backend {
	case "periph", "cdev", "sim":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Planes < 1 || c.Planes > 16 {
		return fmt.Errorf("config: planes %d outside 1..16", c.Planes)
	}
	if c.BaseHoldUs < 1 {
		return fmt.Errorf("config: base_hold_us %d must be positive", c.BaseHoldUs)
	}
	if c.GClkHz < 0 {
		return fmt.Errorf("config: gclk_hz %d must not be negative", c.GClkHz)
	}
	return nil
}
