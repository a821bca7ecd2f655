package bot

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallBot(t *testing.T) {
	t.Parallel()
	b := NewCallBot()

	d, err := b.Decide(0, spot{board: "Ks9d7c", pot: 100}.state())
	require.NoError(t, err)
	assert.Equal(t, game.CheckAction, d.Action)

	d, err = b.Decide(0, spot{board: "Ks9d7c", pot: 100, toCall: 50}.state())
	require.NoError(t, err)
	assert.Equal(t, game.CallAction, d.Action)
}

func TestFoldBot(t *testing.T) {
	t.Parallel()
	b := NewFoldBot()

	d, err := b.Decide(0, spot{board: "Ks9d7c", pot: 100}.state())
	require.NoError(t, err)
	assert.Equal(t, game.CheckAction, d.Action)

	d, err = b.Decide(0, spot{board: "Ks9d7c", pot: 100, toCall: 50}.state())
	require.NoError(t, err)
	assert.Equal(t, game.FoldAction, d.Action)
}

func TestChartBotPushesPremiumWhenShort(t *testing.T) {
	t.Parallel()
	b := NewChartBot()

	d, err := b.Decide(0, spot{hole: "AhAd", pot: 30, toCall: 20, chips: 300}.state())
	require.NoError(t, err)
	assert.Equal(t, game.RaiseBy(300), d.Action)

	d, err = b.Decide(0, spot{hole: "AhAd", pot: 30, toCall: 20, chips: 2000}.state())
	require.NoError(t, err)
	assert.Equal(t, game.CallAction, d.Action, "deep stacks just call")

	d, err = b.Decide(0, spot{hole: "7h2d", pot: 90, toCall: 60}.state())
	require.NoError(t, err)
	assert.Equal(t, game.FoldAction, d.Action, "folds weak hands to a raise")
}

// Every bot's decisions must be accepted by the engine.
func TestBotsPlayLegalActions(t *testing.T) {
	t.Parallel()
	logger := log.New(io.Discard)

	for _, kind := range Kinds {
		t.Run(kind, func(t *testing.T) {
			rng := randutil.New(11)
			b, err := New(kind, rng, logger, WithIterations(50))
			require.NoError(t, err)

			cfg := game.DefaultConfig()
			cfg.StartingChips = 300
			e := game.NewEngine(rng)
			s, err := game.NewTable(cfg)
			require.NoError(t, err)

			for range 20 {
				s, err = e.StartHand(s)
				if errors.Is(err, game.ErrTableFinished) {
					break
				}
				require.NoError(t, err)
				for s.Phase != game.GameOver {
					seat := s.ActivePlayerIndex
					d, err := b.Decide(seat, s)
					require.NoError(t, err)
					s, err = e.ApplyAction(s, seat, d.Action)
					require.NoError(t, err, "%s chose %v", kind, d.Action)
				}
			}
		})
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	t.Parallel()
	_, err := New("maniac", randutil.New(1), nil)
	assert.Error(t, err)

	b, err := New("", randutil.New(1), nil)
	require.NoError(t, err)
	assert.IsType(t, &Policy{}, b)
}
