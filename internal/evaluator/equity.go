package evaluator

import (
	"context"
	"fmt"
	"runtime"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/randutil"
	"golang.org/x/sync/errgroup"
)

// DefaultIterations balances bot latency against Monte Carlo variance.
const DefaultIterations = 400

// Tally accumulates rollout outcomes from the hero's point of view.
type Tally struct {
	Wins       int
	Ties       int
	Losses     int
	Iterations int
}

// Equity returns (wins + ties/2) / iterations.
func (t Tally) Equity() float64 {
	if t.Iterations == 0 {
		return 0
	}
	return (float64(t.Wins) + float64(t.Ties)/2) / float64(t.Iterations)
}

func (t *Tally) merge(o Tally) {
	t.Wins += o.Wins
	t.Ties += o.Ties
	t.Losses += o.Losses
	t.Iterations += o.Iterations
}

// EquityOption configures an equity estimate.
type EquityOption func(*equityConfig)

type equityConfig struct {
	opponent []deck.Card
}

// WithOpponent fixes the opponent's hole cards instead of dealing them at random.
func WithOpponent(hole []deck.Card) EquityOption {
	return func(c *equityConfig) {
		c.opponent = hole
	}
}

// EstimateEquity estimates the probability that hole beats a single random
// opponent once the board is completed. Each iteration shuffles the unknown
// cards, fills the board to five, deals the opponent two cards, and scores
// 1 for a win, 0.5 for a tie and 0 for a loss.
func EstimateEquity(hole, board []deck.Card, iterations int, rng randutil.Source, opts ...EquityOption) (float64, error) {
	t, err := Simulate(hole, board, iterations, rng, opts...)
	if err != nil {
		return 0, err
	}
	return t.Equity(), nil
}

// Simulate runs the rollouts behind EstimateEquity and returns the raw tally.
func Simulate(hole, board []deck.Card, iterations int, rng randutil.Source, opts ...EquityOption) (Tally, error) {
	if rng == nil {
		return Tally{}, fmt.Errorf("%w: rng is required", ErrInvalidInput)
	}
	cfg, remaining, err := prepare(hole, board, iterations, opts)
	if err != nil {
		return Tally{}, err
	}
	return rollout(hole, board, cfg.opponent, remaining, iterations, rng), nil
}

// EstimateEquityParallel splits the iterations across workers, each with its
// own source derived from seed. Results are reproducible for a given seed and
// worker count.
func EstimateEquityParallel(ctx context.Context, hole, board []deck.Card, iterations int, seed int64, workers int, opts ...EquityOption) (Tally, error) {
	cfg, remaining, err := prepare(hole, board, iterations, opts)
	if err != nil {
		return Tally{}, err
	}
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}
	workers = min(workers, iterations)

	perWorker := iterations / workers
	remainder := iterations % workers
	tallies := make([]Tally, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := perWorker
		if w < remainder {
			n++
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := randutil.New(randutil.Derive(seed, w))
			tallies[w] = rollout(hole, board, cfg.opponent, remaining, n, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Tally{}, err
	}

	var total Tally
	for _, t := range tallies {
		total.merge(t)
	}
	return total, nil
}

func prepare(hole, board []deck.Card, iterations int, opts []EquityOption) (*equityConfig, []deck.Card, error) {
	cfg := &equityConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(hole) != 2 {
		return nil, nil, fmt.Errorf("%w: need 2 hole cards, got %d", ErrInvalidInput, len(hole))
	}
	switch len(board) {
	case 0, 3, 4, 5:
	default:
		return nil, nil, fmt.Errorf("%w: board must have 0, 3, 4 or 5 cards, got %d", ErrInvalidInput, len(board))
	}
	if cfg.opponent != nil && len(cfg.opponent) != 2 {
		return nil, nil, fmt.Errorf("%w: opponent needs 2 hole cards, got %d", ErrInvalidInput, len(cfg.opponent))
	}
	if iterations <= 0 {
		return nil, nil, fmt.Errorf("%w: iterations must be positive", ErrInvalidInput)
	}

	known := make([]deck.Card, 0, 9)
	known = append(known, hole...)
	known = append(known, board...)
	known = append(known, cfg.opponent...)
	var seen deck.Set
	for _, c := range known {
		if !c.Valid() || seen.Contains(c) {
			return nil, nil, fmt.Errorf("%w: duplicate or invalid card %v", ErrInvalidInput, c)
		}
		seen = seen.Add(c)
	}
	return cfg, deck.Without(known...), nil
}

func rollout(hole, board, opponent, remaining []deck.Card, iterations int, rng randutil.Source) Tally {
	var t Tally
	scratch := make([]deck.Card, len(remaining))
	hero := make([]deck.Card, 0, 7)
	villain := make([]deck.Card, 0, 7)
	fullBoard := make([]deck.Card, 0, 5)

	for range iterations {
		copy(scratch, remaining)
		deck.Shuffle(scratch, rng)
		draw := len(scratch)
		pop := func() deck.Card {
			draw--
			return scratch[draw]
		}

		fullBoard = append(fullBoard[:0], board...)
		for len(fullBoard) < 5 {
			fullBoard = append(fullBoard, pop())
		}
		villain = villain[:0]
		if opponent != nil {
			villain = append(villain, opponent...)
		} else {
			villain = append(villain, pop(), pop())
		}
		villain = append(villain, fullBoard...)
		hero = append(append(hero[:0], hole...), fullBoard...)

		heroScore := best(hero).Score
		villainScore := best(villain).Score
		switch {
		case heroScore > villainScore:
			t.Wins++
		case heroScore == villainScore:
			t.Ties++
		default:
			t.Losses++
		}
		t.Iterations++
	}
	return t
}
