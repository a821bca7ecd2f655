package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/gameid"
	"github.com/lox/holdem/internal/randutil"
)

// Engine applies the rules to GameState snapshots. It holds no table state
// of its own; callers keep the latest snapshot and must serialize calls
// against it.
type Engine struct {
	rng     randutil.Source
	logger  *log.Logger
	handIDs func() string
	newDeck func(randutil.Source) *deck.Deck
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger. Hands are logged at debug level.
func WithLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHandIDs replaces the hand id generator.
func WithHandIDs(next func() string) EngineOption {
	return func(e *Engine) {
		e.handIDs = next
	}
}

// WithDecks replaces the deck factory, typically to stack the deck in tests.
func WithDecks(next func(randutil.Source) *deck.Deck) EngineOption {
	return func(e *Engine) {
		e.newDeck = next
	}
}

// NewEngine creates an engine drawing all randomness from rng.
func NewEngine(rng randutil.Source, opts ...EngineOption) *Engine {
	if rng == nil {
		panic("rng is required for engine creation")
	}
	e := &Engine{
		rng:     rng,
		logger:  log.New(io.Discard),
		handIDs: gameid.Generate,
		newDeck: deck.New,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithPrefix("engine")
	return e
}

// StartHand moves the button, shuffles, deals and posts the blinds. It is
// only valid in Setup or GameOver. On error the input state is returned.
func (e *Engine) StartHand(s *GameState) (*GameState, error) {
	if s.Phase != Setup && s.Phase != GameOver {
		return s, fmt.Errorf("%w: phase is %s", ErrHandInProgress, s.Phase)
	}
	funded := 0
	for i := range s.Players {
		if s.Players[i].Chips > 0 {
			funded++
		}
	}
	if funded < MinPlayers {
		return s, fmt.Errorf("%w: %d seats with chips", ErrTableFinished, funded)
	}

	next := s.Clone()
	next.HandNumber++
	next.HandID = e.handIDs()
	if err := next.startHand(e.newDeck(e.rng)); err != nil {
		return s, err
	}

	e.logger.Debug("Starting hand",
		"hand", next.HandNumber,
		"handID", next.HandID,
		"dealer", next.DealerIndex,
		"pot", next.Pot)
	e.logTransition(s, next)
	return next, nil
}

// ApplyAction applies a decision for seat, which must be the active seat.
// The action either fully applies or the input state is returned unchanged
// along with the error.
func (e *Engine) ApplyAction(s *GameState, seat int, a Action) (*GameState, error) {
	if !s.Phase.IsBetting() {
		return s, fmt.Errorf("%w: phase is %s", ErrNoHandInProgress, s.Phase)
	}
	if seat != s.ActivePlayerIndex {
		return s, fmt.Errorf("%w: seat %d acted, seat %d is active", ErrNotYourTurn, seat, s.ActivePlayerIndex)
	}

	next := s.Clone()
	if err := next.apply(seat, a); err != nil {
		return s, err
	}

	e.logger.Debug("Player action",
		"handID", next.HandID,
		"seat", seat,
		"player", next.Players[seat].Name,
		"action", next.Players[seat].LastAction,
		"pot", next.Pot)
	e.logTransition(s, next)
	return next, nil
}

func (e *Engine) logTransition(prev, next *GameState) {
	if prev.Phase != next.Phase && next.Phase != GameOver {
		e.logger.Debug("Street dealt",
			"handID", next.HandID,
			"phase", next.Phase,
			"board", next.CommunityCards)
	}
	if next.Phase == GameOver && prev.Phase != GameOver {
		e.logger.Info("Hand complete",
			"handID", next.HandID,
			"winners", next.WinnerIDs,
			"description", next.WinnerDescription,
			"pot", next.Pot)
	}
}
