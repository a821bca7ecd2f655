package runner

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeHanded(t *testing.T, opts ...game.TableOption) *game.GameState {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.PlayerCount = 3
	s, err := game.NewTable(cfg, opts...)
	require.NoError(t, err)
	return s
}

func botAgents(bots ...bot.Bot) []Agent {
	agents := make([]Agent, len(bots))
	for i, b := range bots {
		agents[i] = NewBotAgent(b)
	}
	return agents
}

func TestPlayHandFoldsToBigBlind(t *testing.T) {
	t.Parallel()
	s := threeHanded(t)
	fold := bot.NewFoldBot()

	var observed []HandRecord
	r := New(game.NewEngine(randutil.New(1)), botAgents(fold, fold, fold),
		WithObserver(func(h HandRecord, _, _ *game.GameState) { observed = append(observed, h) }))

	end, record, err := r.PlayHand(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, game.GameOver, end.Phase)
	assert.Equal(t, []string{"You"}, record.Winners, "big blind is seat 0 after the button moves to seat 1")
	assert.Equal(t, 30, record.Pot)
	assert.Equal(t, game.UncontestedDescription, record.WinningBy)
	assert.Empty(t, record.Board)
	require.Len(t, record.Actions, 2)
	assert.Equal(t, 1, record.Actions[0].Seat)
	assert.Equal(t, 2, record.Actions[1].Seat)
	assert.Equal(t, "Fold", record.Actions[0].Applied)
	assert.Len(t, observed, 1)
	assert.Equal(t, 1, record.Number)
	assert.Equal(t, game.Setup, s.Phase, "input state is not modified")
}

func TestPlayHandFoldsIllegalAndFailedDecisions(t *testing.T) {
	t.Parallel()
	s := threeHanded(t)

	checker := AgentFunc(func(context.Context, int, *game.GameState) (bot.Decision, error) {
		return bot.Decision{Action: game.CheckAction}, nil
	})
	broken := AgentFunc(func(context.Context, int, *game.GameState) (bot.Decision, error) {
		return bot.Decision{}, errors.New("connection lost")
	})
	var logs bytes.Buffer
	r := New(game.NewEngine(randutil.New(1)), []Agent{NewBotAgent(bot.NewCallBot()), checker, broken},
		WithLogger(log.New(&logs)))

	end, record, err := r.PlayHand(context.Background(), s)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Illegal action, folding")
	assert.Contains(t, logs.String(), "Agent failed, folding")
	assert.Equal(t, game.GameOver, end.Phase)
	require.Len(t, record.Actions, 2)

	assert.Equal(t, game.FoldAction, record.Actions[0].Action)
	assert.Equal(t, "Fold", record.Actions[0].Applied)
	assert.Contains(t, record.Actions[0].Reasoning, "Illegal action")

	assert.Equal(t, "Fold", record.Actions[1].Applied)
	assert.Contains(t, record.Actions[1].Reasoning, "connection lost")
	assert.Equal(t, []string{"You"}, record.Winners)
}

func TestPlayHandTimesOutSlowAgent(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	released := make(chan struct{})
	slow := AgentFunc(func(turn context.Context, _ int, _ *game.GameState) (bot.Decision, error) {
		<-turn.Done()
		close(released)
		return bot.Decision{}, turn.Err()
	})
	fold := NewBotAgent(bot.NewFoldBot())
	r := New(game.NewEngine(randutil.New(1)), []Agent{fold, slow, fold},
		WithClock(mClock), WithTurnTimeout(time.Second))

	type outcome struct {
		record HandRecord
		err    error
	}
	start := threeHanded(t)
	done := make(chan outcome, 1)
	go func() {
		_, record, err := r.PlayHand(ctx, start)
		done <- outcome{record, err}
	}()

	var got outcome
	for waiting := true; waiting; {
		select {
		case got = <-done:
			waiting = false
		case <-ctx.Done():
			t.Fatal("hand never finished")
		case <-time.After(10 * time.Millisecond):
			mClock.Advance(time.Second).MustWait(ctx)
		}
	}

	require.NoError(t, got.err)
	require.Len(t, got.record.Actions, 2)
	assert.True(t, got.record.Actions[0].TimedOut)
	assert.Equal(t, "Fold", got.record.Actions[0].Applied)
	assert.Equal(t, "Decision timeout", got.record.Actions[0].Reasoning)

	// The abandoned call sees its turn cancelled.
	select {
	case <-released:
	case <-ctx.Done():
		t.Fatal("timed out agent was never cancelled")
	}
}

// countingBot records how many calls overlap.
type countingBot struct {
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (b *countingBot) Decide(int, *game.GameState) (bot.Decision, error) {
	n := b.active.Add(1)
	defer b.active.Add(-1)
	for {
		seen := b.maxSeen.Load()
		if n <= seen || b.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)
	return bot.Decision{Action: game.FoldAction}, nil
}

func TestBotAgentSerializesCalls(t *testing.T) {
	t.Parallel()
	b := &countingBot{}
	agent := NewBotAgent(b)
	s := threeHanded(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := agent.Decide(context.Background(), 0, s)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), b.maxSeen.Load())
}

func TestBotAgentHonoursCancelledTurn(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBotAgent(bot.NewFoldBot()).Decide(ctx, 0, threeHanded(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayHandRejectsAgentMismatch(t *testing.T) {
	t.Parallel()
	r := New(game.NewEngine(randutil.New(1)), botAgents(bot.NewCallBot()))
	_, _, err := r.PlayHand(context.Background(), threeHanded(t))
	assert.Error(t, err)
}

func TestPlayHandCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	call := bot.NewCallBot()
	r := New(game.NewEngine(randutil.New(1)), botAgents(call, call, call))
	_, _, err := r.PlayHand(ctx, threeHanded(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunKeepsLedger(t *testing.T) {
	t.Parallel()
	s := threeHanded(t)
	r := New(game.NewEngine(randutil.New(5)), botAgents(
		bot.NewRandBot(randutil.New(1)),
		bot.NewRandBot(randutil.New(2)),
		bot.NewCallBot(),
	))

	end, table, err := r.Run(context.Background(), s, 25)
	require.NoError(t, err)
	assert.Positive(t, table.Hands)

	net := 0
	for i := range table.Seats {
		require.NoError(t, table.Seats[i].Validate())
		net += table.Seats[i].NetChips
	}
	assert.Equal(t, -table.Dropped, net, "chips only leave the table through split remainders")
	assert.Equal(t, s.TotalChips()-table.Dropped, end.TotalChips())
}

func TestRunStopsWhenTableFinished(t *testing.T) {
	t.Parallel()
	s := threeHanded(t, game.WithChips(2000, 0, 0))
	call := bot.NewCallBot()
	r := New(game.NewEngine(randutil.New(1)), botAgents(call, call, call))

	end, table, err := r.Run(context.Background(), s, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Hands)
	assert.Same(t, s, end)
}

func TestRunTables(t *testing.T) {
	t.Parallel()
	sessions := make([]Session, 3)
	for i := range sessions {
		call := bot.NewCallBot()
		sessions[i] = Session{
			Runner: New(game.NewEngine(randutil.New(int64(i))), botAgents(call, call, call)),
			State:  threeHanded(t),
		}
	}

	table, err := RunTables(context.Background(), sessions, 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, table.Hands, 15)
	assert.Positive(t, table.Hands)
	assert.Equal(t, []string{"You", "AI Player 1", "AI Player 2"}, table.Names)

	_, err = RunTables(context.Background(), nil, 5)
	assert.Error(t, err)
}
