package runner

import (
	"context"
	"fmt"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Session is a runner and the table it starts from.
type Session struct {
	Runner *Runner
	State  *game.GameState
}

// RunTables plays every session concurrently for the given number of hands
// and merges the per-seat results. Sessions must share seat layout and must
// not share engines, agents or random sources.
func RunTables(ctx context.Context, sessions []Session, hands int) (*statistics.Table, error) {
	if len(sessions) == 0 {
		return nil, fmt.Errorf("no tables to run")
	}

	tables := make([]*statistics.Table, len(sessions))
	g, ctx := errgroup.WithContext(ctx)
	for i, sess := range sessions {
		g.Go(func() error {
			_, table, err := sess.Runner.Run(ctx, sess.State, hands)
			if err != nil {
				return fmt.Errorf("table %d: %w", i+1, err)
			}
			tables[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := tables[0]
	for _, t := range tables[1:] {
		if err := total.Merge(t); err != nil {
			return nil, err
		}
	}
	return total, nil
}
