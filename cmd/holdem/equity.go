package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/evaluator"
)

type EquityCmd struct {
	Hole       string `arg:"" help:"Hole cards, e.g. 'AsKd'"`
	Board      string `short:"b" help:"Community cards (0, 3, 4 or 5), e.g. 'Td7s8h'"`
	Opponent   string `help:"Fix the opponent's hole cards instead of dealing them at random"`
	Iterations int    `short:"i" default:"100000" help:"Number of Monte Carlo iterations"`
	Seed       int64  `help:"Random seed for reproducible results (0 for time based)"`
	Workers    int    `short:"w" help:"Parallel workers (0 for one per CPU, up to 8)"`
}

func (c *EquityCmd) Run() error {
	hole, err := parseCardArg("hole cards", c.Hole)
	if err != nil {
		return err
	}
	board, err := parseCardArg("board", c.Board)
	if err != nil {
		return err
	}

	var opts []evaluator.EquityOption
	var opponent []deck.Card
	if c.Opponent != "" {
		if opponent, err = parseCardArg("opponent", c.Opponent); err != nil {
			return err
		}
		opts = append(opts, evaluator.WithOpponent(opponent))
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	tally, err := evaluator.EstimateEquityParallel(ctx, hole, board, c.Iterations, c.Seed, c.Workers, opts...)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	if len(board) > 0 {
		fmt.Printf("%s %s\n", headerStyle.Render("board"), formatCards(board))
	}
	versus := dimStyle.Render("random hand")
	if opponent != nil {
		versus = handStyle.Render(formatCards(opponent))
	}
	fmt.Printf("%s vs %s\n\n", handStyle.Render(formatCards(hole)), versus)

	pct := func(n int) float64 { return float64(n) / float64(tally.Iterations) * 100 }
	fmt.Printf("%s %s\n", headerStyle.Render("equity"), handStyle.Render(fmt.Sprintf("%.1f%%", tally.Equity()*100)))
	fmt.Printf("%s    %s\n", headerStyle.Render("win"), winStyle.Render(fmt.Sprintf("%.1f%%", pct(tally.Wins))))
	fmt.Printf("%s    %s\n", headerStyle.Render("tie"), tieStyle.Render(fmt.Sprintf("%.1f%%", pct(tally.Ties))))
	fmt.Printf("%s   %s\n", headerStyle.Render("lose"), lossStyle.Render(fmt.Sprintf("%.1f%%", pct(tally.Losses))))

	if len(board) >= 3 {
		if hv, err := evaluator.EvaluateHand(hole, board); err == nil {
			fmt.Printf("\n%s %s\n", headerStyle.Render("made hand"), hv.Name())
		}
	}
	fmt.Printf("\n%d iterations in %v (seed: %d)\n", tally.Iterations, duration.Truncate(time.Millisecond), c.Seed)
	return nil
}

// parseCardArg parses an optional card list, naming the argument on error.
func parseCardArg(what, s string) ([]deck.Card, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	cards, err := deck.ParseCards(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return cards, nil
}
