package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/fileutil"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/phh"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/runner"
	"github.com/lox/holdem/internal/statistics"
)

type SimulateCmd struct {
	Config  string `short:"c" default:"holdem.hcl" help:"HCL config file (missing file uses defaults)"`
	Hands   int    `short:"n" help:"Hands per table (overrides runner.hands)"`
	Seed    int64  `help:"RNG seed (0 for time based)"`
	Tables  int    `short:"t" default:"1" help:"Independent tables to run in parallel"`
	Debug   bool   `help:"Log every action"`
	Output  string `short:"o" help:"Write a JSON report to this path"`
	History string `help:"Write every hand to this PHH session file (.phhs)"`
}

// SeatReport is the per-seat summary written by --output.
type SeatReport struct {
	Name            string             `json:"name"`
	Hands           int                `json:"hands"`
	NetChips        int                `json:"netChips"`
	BBPer100        float64            `json:"bbPer100"`
	StdDev          float64            `json:"stdDev"`
	MedianBB        float64            `json:"medianBB"`
	CILow           float64            `json:"ciLow"`
	CIHigh          float64            `json:"ciHigh"`
	ShowdownWins    int                `json:"showdownWins"`
	NonShowdownWins int                `json:"nonShowdownWins"`
	MaxPotBB        float64            `json:"maxPotBB"`
	Positions       map[string]float64 `json:"positions,omitempty"`
}

// Report is the document written by --output.
type Report struct {
	Seed      int64        `json:"seed"`
	Tables    int          `json:"tables"`
	Hands     int          `json:"hands"`
	Dropped   int          `json:"droppedChips"`
	Duration  string       `json:"duration"`
	Seats     []SeatReport `json:"seats"`
	Generated time.Time    `json:"generated"`
}

func (c *SimulateCmd) Run() error {
	logger := newLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Hands > 0 {
		cfg.Hands = c.Hands
	}
	if c.Tables < 1 {
		return fmt.Errorf("--tables must be at least 1")
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var history *phh.Writer
	if c.History != "" {
		f, err := os.Create(c.History)
		if err != nil {
			return fmt.Errorf("failed to create hand history: %w", err)
		}
		defer f.Close()
		history = phh.NewWriter(f)
	}

	sessions := make([]runner.Session, c.Tables)
	for i := range sessions {
		sess, err := newSession(cfg, randutil.Derive(c.Seed, i), logger.With("table", i+1), history, fmt.Sprintf("table-%d", i+1))
		if err != nil {
			return err
		}
		sessions[i] = sess
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Texas Hold'em simulation ♦ ♣ "))
	fmt.Printf("%d table(s) x %d hands, %d players, blinds %d/%d, hero %s vs %s (seed: %d)\n\n",
		c.Tables, cfg.Hands, cfg.Players, cfg.SmallBlind, cfg.BigBlind, cfg.Hero, cfg.Opponents, c.Seed)

	start := time.Now()
	table, err := runner.RunTables(ctx, sessions, cfg.Hands)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	printTable(table, duration)

	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, buildReport(table, c.Seed, c.Tables, duration)); err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", c.Output)
	}
	if history != nil {
		fmt.Printf("%d hands written to %s\n", history.Hands(), c.History)
	}
	return nil
}

// newSession seats a hero in seat 0 and opponents elsewhere. Every seat and
// the engine get their own source so tables can run concurrently. A nil
// history disables hand export.
func newSession(cfg config.Config, seed int64, logger *log.Logger, history *phh.Writer, name string) (runner.Session, error) {
	state, err := game.NewTable(cfg.Game(), game.WithSeats(seats(cfg)...))
	if err != nil {
		return runner.Session{}, err
	}

	agents := make([]runner.Agent, cfg.Players)
	for i := range agents {
		kind := cfg.Opponents
		if i == 0 {
			kind = cfg.Hero
		}
		b, err := bot.New(kind, randutil.New(randutil.Derive(seed, i+1)), logger, bot.WithIterations(cfg.Iterations))
		if err != nil {
			return runner.Session{}, err
		}
		agents[i] = runner.NewBotAgent(b)
	}

	engine := game.NewEngine(randutil.New(randutil.Derive(seed, 0)), game.WithLogger(logger))
	r := runner.New(engine, agents,
		runner.WithTurnTimeout(cfg.TurnTimeout),
		runner.WithLogger(logger),
		runner.WithObserver(func(h runner.HandRecord, before, after *game.GameState) {
			for _, a := range h.Actions {
				logger.Debug("Action", "handID", h.HandID, "phase", a.Phase, "player", a.Name, "action", a.Applied, "reasoning", a.Reasoning)
			}
			logger.Debug("Hand summary", "handID", h.HandID, "board", h.Board, "pot", h.Pot, "winners", h.Winners, "by", h.WinningBy)

			if history == nil {
				return
			}
			hist, err := phh.FromHand(h, before, after, name, time.Now())
			if err == nil {
				err = history.Write(hist)
			}
			if err != nil {
				logger.Warn("Failed to record hand history", "handID", h.HandID, "error", err)
			}
		}),
	)
	return runner.Session{Runner: r, State: state}, nil
}

func seats(cfg config.Config) []game.Seat {
	out := make([]game.Seat, cfg.Players)
	for i := range out {
		if i == 0 {
			out[i] = game.Seat{Name: "Hero (" + cfg.Hero + ")"}
			continue
		}
		out[i] = game.Seat{Name: fmt.Sprintf("Bot %d (%s)", i, cfg.Opponents)}
	}
	return out
}

func printTable(t *statistics.Table, duration time.Duration) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("seat"),
		headerStyle.Render("hands"),
		headerStyle.Render("net chips"),
		headerStyle.Render("bb/100"),
		headerStyle.Render("95% CI (bb/hand)"),
		headerStyle.Render("wins sd/nsd"))

	for i := range t.Seats {
		s := &t.Seats[i]
		low, high := s.ConfidenceInterval95()
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%d/%d\n",
			handStyle.Render(t.Names[i]),
			s.Hands,
			signed(float64(s.NetChips), fmt.Sprintf("%+d", s.NetChips)),
			signed(s.BBPer100(), fmt.Sprintf("%+.1f", s.BBPer100())),
			dimStyle.Render(fmt.Sprintf("[%.2f, %.2f]", low, high)),
			s.ShowdownWins, s.NonShowdownWins)
	}
	w.Flush()

	fmt.Printf("\n%d hands in %v", t.Hands, duration.Truncate(time.Millisecond))
	if t.Dropped > 0 {
		fmt.Printf(", %s", tieStyle.Render(fmt.Sprintf("%d chips lost to split remainders", t.Dropped)))
	}
	fmt.Println()
}

func buildReport(t *statistics.Table, seed int64, tables int, duration time.Duration) Report {
	r := Report{
		Seed:      seed,
		Tables:    tables,
		Hands:     t.Hands,
		Dropped:   t.Dropped,
		Duration:  duration.String(),
		Generated: time.Now().UTC(),
	}
	for i := range t.Seats {
		s := &t.Seats[i]
		low, high := s.ConfidenceInterval95()
		r.Seats = append(r.Seats, SeatReport{
			Name:            t.Names[i],
			Hands:           s.Hands,
			NetChips:        s.NetChips,
			BBPer100:        s.BBPer100(),
			StdDev:          s.StdDev(),
			CILow:           low,
			CIHigh:          high,
			ShowdownWins:    s.ShowdownWins,
			NonShowdownWins: s.NonShowdownWins,
			MaxPotBB:        s.MaxPotBB,
			MedianBB:        s.Median(),
			Positions:       positionMeans(s),
		})
	}
	return r
}

func positionMeans(s *statistics.Statistics) map[string]float64 {
	if len(s.PositionResults) == 0 {
		return nil
	}
	out := make(map[string]float64, len(s.PositionResults))
	for pos := range s.PositionResults {
		out[pos] = s.PositionMean(pos)
	}
	return out
}
