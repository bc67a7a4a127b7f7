// Package config loads binary settings from the environment, then lets
// command-line flags override them.
package config

import (
    "errors"
    "flag"
    "fmt"
    "time"

    "github.com/caarlos0/env/v11"
)

// Config holds settings shared by the server and the terminal client.
type Config struct {
    Addr    string        `env:"TETRIS_ADDR" envDefault:":8080"`
    Seed    int64         `env:"TETRIS_SEED" envDefault:"0"`
    Refresh time.Duration `env:"TETRIS_REFRESH" envDefault:"16ms"`
    Sound   bool          `env:"TETRIS_SOUND" envDefault:"true"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Parse reads the environment into a Config, then applies flags from args.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
    var cfg Config
    if err := env.Parse(&cfg); err != nil {
        return Config{}, fmt.Errorf("parse env: %w", err)
    }
    fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
    fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Piece generator seed (0 picks a random one)")
    fs.DurationVar(&cfg.Refresh, "refresh", cfg.Refresh, "Scheduler refresh interval")
    fs.BoolVar(&cfg.Sound, "sound", cfg.Sound, "Play sound cues in the terminal client")
    if err := fs.Parse(args); err != nil {
        return Config{}, fmt.Errorf("parse flags: %w", err)
    }
    if err := cfg.Validate(); err != nil {
        return Config{}, err
    }
    return cfg, nil
}

// Validate rejects settings the binaries cannot run with.
func (c Config) Validate() error {
    if c.Refresh <= 0 {
        return fmt.Errorf("%w: refresh must be positive, got %s", ErrInvalid, c.Refresh)
    }
    if c.Refresh > time.Second {
        return fmt.Errorf("%w: refresh %s is slower than the slowest drop interval", ErrInvalid, c.Refresh)
    }
    return nil
}
