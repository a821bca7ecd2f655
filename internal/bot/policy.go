package bot

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/evaluator"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
)

// Thresholds of the decision tree.
const (
	foldMargin         = 0.1
	speculateChance    = 0.9 // draw above this makes a speculative call
	speculateStackFrac = 0.1
	probeChance        = 0.8
	slowPlayChance     = 0.7
	slowPlayEquity     = 0.9
	valueEquity        = 0.6
	bigValueEquity     = 0.85
	bigCallStackFrac   = 0.5
	bigCallEquity      = 0.4
	bigValueSizing     = 1.5
	valueSizing        = 0.75
)

// Pre-flop heuristic: a baseline from the starting-hand ranking plus boosts.
const (
	preFlopBase      = 0.32
	preFlopSpread    = 0.53
	pairBoost        = 0.20
	suitedBoost      = 0.05
	highCardsBoost   = 0.10
	highCardsOverSum = 20
)

// EquityFunc estimates the chance that hole wins against one random hand.
type EquityFunc func(hole, board []deck.Card, iterations int, rng randutil.Source) (float64, error)

// PolicyOption configures a Policy.
type PolicyOption func(*Policy)

// WithEquity replaces the Monte Carlo estimator used after the flop.
func WithEquity(fn EquityFunc) PolicyOption {
	return func(p *Policy) {
		p.equity = fn
	}
}

// WithIterations sets the number of rollouts per post-flop decision.
func WithIterations(n int) PolicyOption {
	return func(p *Policy) {
		if n > 0 {
			p.iterations = n
		}
	}
}

// WithLogger sets the logger used to report decisions at debug level.
func WithLogger(logger *log.Logger) PolicyOption {
	return func(p *Policy) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Policy compares equity with pot odds to pick an action. It draws two
// uniform numbers per decision: a speculation gate then an aggression gate.
type Policy struct {
	rng        randutil.Source
	equity     EquityFunc
	iterations int
	logger     *log.Logger
}

// NewPolicy creates a policy drawing randomness from rng.
func NewPolicy(rng randutil.Source, opts ...PolicyOption) *Policy {
	if rng == nil {
		panic("rng is required for policy creation")
	}
	p := &Policy{
		rng:        rng,
		iterations: evaluator.DefaultIterations,
		logger:     log.New(io.Discard),
		equity: func(hole, board []deck.Card, iterations int, rng randutil.Source) (float64, error) {
			return evaluator.EstimateEquity(hole, board, iterations, rng)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithPrefix("bot")
	return p
}

// Decide picks an action for seat.
func (p *Policy) Decide(seat int, s *game.GameState) (Decision, error) {
	player, err := seatToAct(seat, s)
	if err != nil {
		return Decision{}, err
	}

	speculate := p.rng.Float64()
	aggression := p.rng.Float64()

	t := &thinking{}
	equity, err := p.effectiveEquity(player.Hand, s.CommunityCards, t)
	if err != nil {
		return Decision{}, err
	}

	toCall := s.ToCall(seat)
	var potOdds float64
	if toCall > 0 {
		potOdds = float64(toCall) / float64(s.Pot+toCall)
		t.add("Facing %d into %d, pot odds %.2f", toCall, s.Pot, potOdds)
	}

	d := Decision{
		Action:  p.choose(s, player, toCall, equity, potOdds, speculate, aggression, t),
		Equity:  equity,
		PotOdds: potOdds,
	}
	d.Reasoning = t.String()

	p.logger.Debug("Bot decision made",
		"handID", s.HandID,
		"seat", seat,
		"player", player.Name,
		"phase", s.Phase,
		"equity", equity,
		"potOdds", potOdds,
		"action", d.Action,
		"reasoning", d.Reasoning)
	return d, nil
}

func (p *Policy) choose(s *game.GameState, player *game.Player, toCall int, equity, potOdds, speculate, aggression float64, t *thinking) game.Action {
	chips := float64(player.Chips)

	if toCall > 0 && equity < potOdds-foldMargin {
		if speculate > speculateChance && float64(toCall) < chips*speculateStackFrac {
			t.add("Behind the odds but the call is cheap, speculating")
			return game.CallAction
		}
		t.add("Not getting the right price")
		return game.FoldAction
	}

	if equity < valueEquity {
		if float64(toCall) > chips*bigCallStackFrac && equity < bigCallEquity {
			t.add("Too much of my stack to call with a marginal hand")
			return game.FoldAction
		}
		if toCall == 0 {
			if aggression > probeChance {
				t.add("Taking a stab at the pot")
				return game.RaiseBy(max(s.Config.BigBlind, s.MinRaise))
			}
			t.add("Checking a medium hand")
			return game.CheckAction
		}
		t.add("Calling with a medium hand")
		return game.CallAction
	}

	if equity > slowPlayEquity && speculate > slowPlayChance && toCall == 0 {
		t.add("Slow playing a monster")
		return game.CheckAction
	}

	sizing := valueSizing
	if equity > bigValueEquity {
		sizing = bigValueSizing
	}
	amount := float64(s.Pot) * sizing
	amount = max(amount, float64(s.MinRaise))
	amount = min(amount, chips)

	if toCall > 0 && amount < float64(2*toCall) {
		t.add("Raise would be too small, calling instead")
		return game.CallAction
	}
	t.add("Raising %d for value", int(amount))
	return game.RaiseBy(int(amount))
}

// effectiveEquity uses the starting-hand heuristic before the flop and a
// Monte Carlo estimate afterwards.
func (p *Policy) effectiveEquity(hole, board []deck.Card, t *thinking) (float64, error) {
	if len(board) == 0 {
		equity := PreFlopEquity(hole)
		t.add("Holding %s, pre-flop strength %.2f", deck.StartingHand(hole), equity)
		return equity, nil
	}
	equity, err := p.equity(hole, board, p.iterations, p.rng)
	if err != nil {
		return 0, err
	}
	t.add("Equity %.2f on %d board cards", equity, len(board))
	return equity, nil
}

// PreFlopEquity is the heuristic strength of two hole cards. It can exceed 1
// for premium hands.
func PreFlopEquity(hole []deck.Card) float64 {
	equity := preFlopBase + preFlopSpread*deck.Percentile(hole)
	if len(hole) != 2 {
		return equity
	}
	a, b := hole[0], hole[1]
	if a.Rank == b.Rank {
		equity += pairBoost
	}
	if a.Suit == b.Suit {
		equity += suitedBoost
	}
	if a.Value()+b.Value() > highCardsOverSum {
		equity += highCardsBoost
	}
	return equity
}
