package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/fileutil"
	"github.com/lox/holdem/internal/phh"
	"github.com/lox/holdem/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardArg(t *testing.T) {
	t.Parallel()
	cards, err := parseCardArg("board", " Td 7s 8h ")
	require.NoError(t, err)
	assert.Equal(t, deck.MustParseCards("Td7s8h"), cards)

	cards, err = parseCardArg("board", "")
	require.NoError(t, err)
	assert.Nil(t, cards)

	_, err = parseCardArg("hole cards", "Zz")
	assert.ErrorContains(t, err, "hole cards")
}

func TestSeatsNameHeroAndOpponents(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Players = 3
	cfg.Opponents = "call"

	got := seats(cfg)
	require.Len(t, got, 3)
	assert.Equal(t, "Hero (policy)", got[0].Name)
	assert.Equal(t, "Bot 2 (call)", got[2].Name)
}

func TestSimulateSessionsProduceReport(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Hero = "chart"
	cfg.Opponents = "random"
	cfg.Hands = 10

	logger := log.New(io.Discard)
	var buf bytes.Buffer
	history := phh.NewWriter(&buf)
	sessions := make([]runner.Session, 2)
	for i := range sessions {
		sess, err := newSession(cfg, int64(i+1), logger, history, "t")
		require.NoError(t, err)
		sessions[i] = sess
	}

	table, err := runner.RunTables(context.Background(), sessions, cfg.Hands)
	require.NoError(t, err)

	report := buildReport(table, 7, 2, 0)
	assert.Equal(t, table.Hands, report.Hands)
	require.Len(t, report.Seats, cfg.Players)

	net := 0
	for _, s := range report.Seats {
		net += s.NetChips
		assert.NotEmpty(t, s.Positions)
	}
	assert.Equal(t, -report.Dropped, net)

	assert.Equal(t, table.Hands, history.Hands())
	assert.Contains(t, buf.String(), `variant = "NT"`)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, fileutil.WriteJSON(path, report))
}
