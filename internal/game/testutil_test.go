package game

import (
	"slices"
	"testing"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/randutil"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, cfg GameConfig, opts ...TableOption) *GameState {
	t.Helper()
	s, err := NewTable(cfg, opts...)
	require.NoError(t, err)
	return s
}

func newTestEngine(opts ...EngineOption) *Engine {
	opts = append([]EngineOption{WithHandIDs(func() string { return "test-hand" })}, opts...)
	return NewEngine(randutil.New(42), opts...)
}

// stackedDecks deals holes in seat order (one entry per live seat), then the
// board with an unused card burned before each street.
func stackedDecks(holes []string, board string) EngineOption {
	var order []deck.Card
	for _, h := range holes {
		order = append(order, deck.MustParseCards(h)...)
	}
	b := deck.MustParseCards(board)
	spare := deck.Without(append(slices.Clone(order), b...)...)

	order = append(order, spare[0])
	order = append(order, b[:3]...)
	order = append(order, spare[1], b[3], spare[2], b[4])
	order = append(order, spare[3:]...)
	slices.Reverse(order)

	return WithDecks(func(randutil.Source) *deck.Deck {
		return deck.FromCards(order)
	})
}

func mustStart(t *testing.T, e *Engine, s *GameState) *GameState {
	t.Helper()
	next, err := e.StartHand(s)
	require.NoError(t, err)
	checkInvariants(t, next)
	return next
}

func mustAct(t *testing.T, e *Engine, s *GameState, a Action) *GameState {
	t.Helper()
	next, err := e.ApplyAction(s, s.ActivePlayerIndex, a)
	require.NoError(t, err, "seat %d %v", s.ActivePlayerIndex, a)
	checkInvariants(t, next)
	return next
}

// checkInvariants asserts what must hold for every observable snapshot.
func checkInvariants(t *testing.T, s *GameState) {
	t.Helper()
	total := 0
	for _, p := range s.Players {
		total += p.TotalHandBet
		require.GreaterOrEqual(t, p.Chips, 0, "seat %d", p.ID)
	}
	require.Equal(t, total, s.Pot, "pot must equal the sum of hand bets")

	if s.Phase.IsBetting() {
		require.False(t, s.RoundComplete(), "a completed round must not be observable")
		active := s.ActivePlayer()
		require.NotNil(t, active)
		require.True(t, active.CanAct(), "seat %d cannot act", s.ActivePlayerIndex)
		require.Positive(t, s.MinRaise)
		return
	}
	require.Equal(t, -1, s.ActivePlayerIndex)
}
