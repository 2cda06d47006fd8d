package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/segview/numguess/sim"
)

// config is read from the environment. The timing knobs mirror the
// controller tunables so a deployment can slow the whole game down (or speed
// tests up) without a rebuild.
type config struct {
	Addr       string        `env:"NUMGUESS_ADDR" envDefault:":8080"`
	TickHz     int           `env:"NUMGUESS_TICK_HZ" envDefault:"10000"`
	FrameRate  int           `env:"NUMGUESS_FRAME_RATE" envDefault:"30"`
	SessionTTL time.Duration `env:"NUMGUESS_SESSION_TTL" envDefault:"10m"`
	LogLevel   string        `env:"NUMGUESS_LOG_LEVEL" envDefault:"info"`

	Debounce   time.Duration `env:"NUMGUESS_DEBOUNCE" envDefault:"20ms"`
	ShowResult time.Duration `env:"NUMGUESS_SHOW_RESULT" envDefault:"2s"`
	WinAnim    time.Duration `env:"NUMGUESS_WIN_ANIM" envDefault:"4s"`
	WinStats   time.Duration `env:"NUMGUESS_WIN_STATS" envDefault:"3s"`
	DigitDwell time.Duration `env:"NUMGUESS_DIGIT_DWELL" envDefault:"1ms"`
	AnimFrame  time.Duration `env:"NUMGUESS_ANIM_FRAME" envDefault:"250ms"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TickHz <= 0 {
		return cfg, fmt.Errorf("tick rate must be positive, got %d", cfg.TickHz)
	}
	if cfg.FrameRate <= 0 {
		return cfg, fmt.Errorf("frame rate must be positive, got %d", cfg.FrameRate)
	}
	return cfg, nil
}

func (c config) simConfig() sim.Config {
	return sim.Config{
		TickHz:     c.TickHz,
		Debounce:   c.Debounce,
		ShowResult: c.ShowResult,
		WinAnim:    c.WinAnim,
		WinStats:   c.WinStats,
		DigitDwell: c.DigitDwell,
		AnimFrame:  c.AnimFrame,
	}
}
