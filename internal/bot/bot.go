// Package bot contains computer players. Policy is the equity driven
// opponent; the others are simple reference strategies for simulations.
package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
)

// ErrCannotDecide is returned when asked to act for a seat that has no
// decision to make.
var ErrCannotDecide = errors.New("cannot decide")

// Bot chooses an action for a seat given a snapshot.
type Bot interface {
	Decide(seat int, s *game.GameState) (Decision, error)
}

// Decision is an action plus the reasoning behind it.
type Decision struct {
	Action    game.Action
	Equity    float64
	PotOdds   float64
	Reasoning string
}

// Kinds lists the names accepted by New.
var Kinds = []string{"policy", "call", "fold", "random", "chart"}

// New builds a bot by kind. Policy options are ignored by the other kinds.
func New(kind string, rng randutil.Source, logger *log.Logger, opts ...PolicyOption) (Bot, error) {
	switch strings.ToLower(kind) {
	case "", "policy":
		return NewPolicy(rng, append([]PolicyOption{WithLogger(logger)}, opts...)...), nil
	case "call":
		return NewCallBot(), nil
	case "fold":
		return NewFoldBot(), nil
	case "random":
		return NewRandBot(rng), nil
	case "chart":
		return NewChartBot(), nil
	default:
		return nil, fmt.Errorf("unknown bot kind %q (want one of %s)", kind, strings.Join(Kinds, ", "))
	}
}

// seatToAct validates that seat holds cards and can still act.
func seatToAct(seat int, s *game.GameState) (*game.Player, error) {
	if seat < 0 || seat >= len(s.Players) {
		return nil, fmt.Errorf("%w: seat %d out of range", ErrCannotDecide, seat)
	}
	p := &s.Players[seat]
	if !p.CanAct() || len(p.Hand) != 2 {
		return nil, fmt.Errorf("%w: seat %d is not in the hand", ErrCannotDecide, seat)
	}
	return p, nil
}

// thinking accumulates reasoning while a decision is made.
type thinking struct {
	thoughts []string
}

func (t *thinking) add(format string, args ...any) {
	t.thoughts = append(t.thoughts, fmt.Sprintf(format, args...))
}

func (t *thinking) String() string {
	if len(t.thoughts) == 0 {
		return "No clear reasoning available"
	}
	return strings.Join(t.thoughts, ". ")
}
