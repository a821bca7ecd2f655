package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/holdem/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, game.DefaultConfig(), cfg.Game())
	assert.Equal(t, 15*time.Second, cfg.TurnTimeout)
}

func TestParse(t *testing.T) {
	src := `
table {
  players        = 6
  starting_chips = 1000
  big_blind      = 50
}

bot {
  hero       = "chart"
  iterations = 200
}

runner {
  turn_timeout = "250ms"
  hands        = 40
}
`
	cfg, err := Parse([]byte(src), "holdem.hcl")
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Players)
	assert.Equal(t, 1000, cfg.StartingChips)
	assert.Equal(t, 10, cfg.SmallBlind, "unset attributes keep defaults")
	assert.Equal(t, 50, cfg.BigBlind)
	assert.Equal(t, "chart", cfg.Hero)
	assert.Equal(t, "policy", cfg.Opponents)
	assert.Equal(t, 200, cfg.Iterations)
	assert.Equal(t, 250*time.Millisecond, cfg.TurnTimeout)
	assert.Equal(t, 40, cfg.Hands)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `table {`},
		{"unknown attribute", `table { seats = 3 }`},
		{"explicit zero blind", `table { small_blind = 0 }`},
		{"too many players", `table { players = 10 }`},
		{"big blind below small", `table { small_blind = 40 }`},
		{"unknown bot", `bot { opponents = "shark" }`},
		{"zero iterations", `bot { iterations = 0 }`},
		{"bad duration", `runner { turn_timeout = "soon" }`},
		{"negative hands", `runner { hands = -1 }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "test.hcl")
			assert.Error(t, err)
		})
	}
}

func TestParseInvalidTableWrapsGameError(t *testing.T) {
	_, err := Parse([]byte(`table { players = 1 }`), "test.hcl")
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`table { players = 3 }`), 0o644))

	t.Setenv("HOLDEM_TABLE_PLAYERS", "5")
	t.Setenv("HOLDEM_BOT_OPPONENTS", "random")
	t.Setenv("HOLDEM_RUNNER_TURN_TIMEOUT", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Players)
	assert.Equal(t, "random", cfg.Opponents)
	assert.Equal(t, 2*time.Second, cfg.TurnTimeout)
}

func TestLoadRejectsBadEnvironment(t *testing.T) {
	t.Setenv("HOLDEM_TABLE_BIG_BLIND", "lots")
	_, err := Load("")
	assert.Error(t, err)
}
