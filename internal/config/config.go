// Package config loads simulation settings from an optional HCL file and
// HOLDEM_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kelseyhightower/envconfig"
	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/evaluator"
	"github.com/lox/holdem/internal/game"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "holdem"

// Config is the resolved configuration.
type Config struct {
	Players       int           `envconfig:"TABLE_PLAYERS"`
	StartingChips int           `envconfig:"TABLE_STARTING_CHIPS"`
	SmallBlind    int           `envconfig:"TABLE_SMALL_BLIND"`
	BigBlind      int           `envconfig:"TABLE_BIG_BLIND"`
	Iterations    int           `envconfig:"BOT_ITERATIONS"`
	Hero          string        `envconfig:"BOT_HERO"`
	Opponents     string        `envconfig:"BOT_OPPONENTS"`
	TurnTimeout   time.Duration `envconfig:"RUNNER_TURN_TIMEOUT"`
	Hands         int           `envconfig:"RUNNER_HANDS"`
}

// File mirrors the HCL layout. Every block and attribute is optional.
type File struct {
	Table  *TableBlock  `hcl:"table,block"`
	Bot    *BotBlock    `hcl:"bot,block"`
	Runner *RunnerBlock `hcl:"runner,block"`
}

type TableBlock struct {
	Players       *int `hcl:"players,optional"`
	StartingChips *int `hcl:"starting_chips,optional"`
	SmallBlind    *int `hcl:"small_blind,optional"`
	BigBlind      *int `hcl:"big_blind,optional"`
}

type BotBlock struct {
	Iterations *int    `hcl:"iterations,optional"`
	Hero       *string `hcl:"hero,optional"`
	Opponents  *string `hcl:"opponents,optional"`
}

type RunnerBlock struct {
	TurnTimeout *string `hcl:"turn_timeout,optional"`
	Hands       *int    `hcl:"hands,optional"`
}

// Default returns the stock four-handed table with policy bots.
func Default() Config {
	g := game.DefaultConfig()
	return Config{
		Players:       g.PlayerCount,
		StartingChips: g.StartingChips,
		SmallBlind:    g.SmallBlind,
		BigBlind:      g.BigBlind,
		Iterations:    evaluator.DefaultIterations,
		Hero:          "policy",
		Opponents:     "policy",
		TurnTimeout:   15 * time.Second,
		Hands:         100,
	}
}

// Load reads filename if it exists, applies environment overrides and
// validates the result. An empty filename or missing file yields defaults.
func Load(filename string) (Config, error) {
	cfg := Default()

	if filename != "" {
		src, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := cfg.apply(src, filename); err != nil {
				return Config{}, err
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes HCL source on top of the defaults without consulting the
// environment.
func Parse(src []byte, filename string) (Config, error) {
	cfg := Default()
	if err := cfg.apply(src, filename); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) apply(src []byte, filename string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var f File
	if diags := gohcl.DecodeBody(file.Body, nil, &f); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if t := f.Table; t != nil {
		setInt(&c.Players, t.Players)
		setInt(&c.StartingChips, t.StartingChips)
		setInt(&c.SmallBlind, t.SmallBlind)
		setInt(&c.BigBlind, t.BigBlind)
	}
	if b := f.Bot; b != nil {
		setInt(&c.Iterations, b.Iterations)
		if b.Hero != nil {
			c.Hero = *b.Hero
		}
		if b.Opponents != nil {
			c.Opponents = *b.Opponents
		}
	}
	if r := f.Runner; r != nil {
		setInt(&c.Hands, r.Hands)
		if r.TurnTimeout != nil {
			d, err := time.ParseDuration(*r.TurnTimeout)
			if err != nil {
				return fmt.Errorf("runner.turn_timeout: %w", err)
			}
			c.TurnTimeout = d
		}
	}
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Game returns the table settings.
func (c Config) Game() game.GameConfig {
	return game.GameConfig{
		PlayerCount:   c.Players,
		StartingChips: c.StartingChips,
		SmallBlind:    c.SmallBlind,
		BigBlind:      c.BigBlind,
	}
}

// Validate checks every setting.
func (c Config) Validate() error {
	if err := c.Game().Validate(); err != nil {
		return err
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("bot.iterations must be positive, got %d", c.Iterations)
	}
	for _, kind := range []string{c.Hero, c.Opponents} {
		if !slices.Contains(bot.Kinds, strings.ToLower(kind)) {
			return fmt.Errorf("bot: unknown kind %q (want one of %s)", kind, strings.Join(bot.Kinds, ", "))
		}
	}
	if c.TurnTimeout <= 0 {
		return fmt.Errorf("runner.turn_timeout must be positive, got %s", c.TurnTimeout)
	}
	if c.Hands <= 0 {
		return fmt.Errorf("runner.hands must be positive, got %d", c.Hands)
	}
	return nil
}
