// Package runner drives hands to completion by asking each seat's agent for
// a decision in turn and feeding it to the engine.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/statistics"
)

// DefaultTurnTimeout bounds a single decision.
const DefaultTurnTimeout = 15 * time.Second

// ActionRecord is one decision as it was applied.
type ActionRecord struct {
	Seat      int
	Name      string
	Phase     game.Phase
	Action    game.Action
	Applied   string // as described by the engine, e.g. "Call 20"
	Bet       int    // seat's street contribution after the action
	Raised    bool   // the action raised the current bet
	Reasoning string
	TimedOut  bool
}

// HandRecord summarises a finished hand for observers.
type HandRecord struct {
	HandID    string
	Number    int
	Actions   []ActionRecord
	Board     string
	Pot       int
	Winners   []string
	WinningBy string
}

// Observer is notified after every completed hand with the state the hand
// started from and the finished state.
type Observer func(rec HandRecord, before, after *game.GameState)

// Runner plays hands at one table.
type Runner struct {
	engine   *game.Engine
	agents   []Agent
	clock    quartz.Clock
	timeout  time.Duration
	logger   *log.Logger
	observer Observer
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock sets the clock used for turn timeouts.
func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithTurnTimeout sets how long an agent may think before it is folded.
func WithTurnTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver registers a callback for completed hands.
func WithObserver(fn Observer) Option {
	return func(r *Runner) {
		r.observer = fn
	}
}

// New creates a runner with one agent per seat.
func New(engine *game.Engine, agents []Agent, opts ...Option) *Runner {
	r := &Runner{
		engine:  engine,
		agents:  agents,
		clock:   quartz.NewReal(),
		timeout: DefaultTurnTimeout,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithPrefix("runner")
	return r
}

// PlayHand starts a hand from s and plays it to GameOver. Agent errors,
// timeouts and illegal actions are all converted to a fold.
func (r *Runner) PlayHand(ctx context.Context, s *game.GameState) (*game.GameState, HandRecord, error) {
	if len(r.agents) != len(s.Players) {
		return s, HandRecord{}, fmt.Errorf("%d agents for %d seats", len(r.agents), len(s.Players))
	}

	state, err := r.engine.StartHand(s)
	if err != nil {
		return s, HandRecord{}, err
	}
	record := HandRecord{HandID: state.HandID, Number: state.HandNumber}

	for state.Phase.IsBetting() {
		if err := ctx.Err(); err != nil {
			return state, record, err
		}

		seat := state.ActivePlayerIndex
		phase := state.Phase
		decision, timedOut, err := r.decide(ctx, seat, state)
		if err != nil {
			return state, record, err
		}

		next, err := r.engine.ApplyAction(state, seat, decision.Action)
		if err != nil {
			r.logger.Warn("Illegal action, folding",
				"handID", state.HandID,
				"seat", seat,
				"action", decision.Action,
				"error", err)
			decision = bot.Decision{Action: game.FoldAction, Reasoning: "Illegal action: " + err.Error()}
			if next, err = r.engine.ApplyAction(state, seat, game.FoldAction); err != nil {
				return state, record, fmt.Errorf("fold rejected: %w", err)
			}
		}

		record.Actions = append(record.Actions, ActionRecord{
			Seat:      seat,
			Name:      state.Players[seat].Name,
			Phase:     phase,
			Action:    decision.Action,
			Applied:   next.LastMove.Description,
			Bet:       next.LastMove.Bet,
			Raised:    next.LastMove.Raised,
			Reasoning: decision.Reasoning,
			TimedOut:  timedOut,
		})
		state = next
	}

	record.Pot = state.Pot
	record.WinningBy = state.WinnerDescription
	board := make([]string, len(state.CommunityCards))
	for i, c := range state.CommunityCards {
		board[i] = c.String()
	}
	record.Board = strings.Join(board, " ")
	for _, id := range state.WinnerIDs {
		record.Winners = append(record.Winners, state.Players[id].Name)
	}
	if r.observer != nil {
		r.observer(record, s, state)
	}
	return state, record, nil
}

// decide asks the seat's agent for an action, folding on error or timeout.
// Only a cancelled context is returned as an error.
func (r *Runner) decide(ctx context.Context, seat int, s *game.GameState) (bot.Decision, bool, error) {
	type result struct {
		decision bot.Decision
		err      error
	}
	results := make(chan result, 1)
	snapshot := s.Clone()
	agent := r.agents[seat]

	// Cancelled when the turn ends so an abandoned agent can stop early.
	turnCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		d, err := agent.Decide(turnCtx, seat, snapshot)
		results <- result{d, err}
	}()

	timeoutFired := make(chan struct{})
	timer := r.clock.AfterFunc(r.timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	select {
	case res := <-results:
		if res.err != nil {
			r.logger.Warn("Agent failed, folding", "handID", s.HandID, "seat", seat, "error", res.err)
			return bot.Decision{Action: game.FoldAction, Reasoning: "Agent error: " + res.err.Error()}, false, nil
		}
		return res.decision, false, nil

	case <-timeoutFired:
		r.logger.Warn("Decision timeout, folding", "handID", s.HandID, "seat", seat, "timeout", r.timeout)
		return bot.Decision{Action: game.FoldAction, Reasoning: "Decision timeout"}, true, nil

	case <-ctx.Done():
		return bot.Decision{}, false, ctx.Err()
	}
}

// Run plays up to hands hands, stopping early once fewer than two seats
// have chips. It returns the final state and per-seat statistics.
func (r *Runner) Run(ctx context.Context, s *game.GameState, hands int) (*game.GameState, *statistics.Table, error) {
	names := make([]string, len(s.Players))
	for i, p := range s.Players {
		names[i] = p.Name
	}
	table := statistics.NewTable(names)

	state := s
	for range hands {
		next, _, err := r.PlayHand(ctx, state)
		if errors.Is(err, game.ErrTableFinished) {
			r.logger.Info("Table finished", "hands", table.Hands)
			break
		}
		if err != nil {
			return state, table, err
		}
		if err := table.Record(state, next); err != nil {
			return next, table, err
		}
		state = next
	}
	return state, table, nil
}
