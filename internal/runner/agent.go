package runner

import (
	"context"
	"sync"

	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/game"
)

// Agent supplies decisions for one seat. Implementations receive a private
// copy of the state and may block; the runner enforces the turn timeout.
type Agent interface {
	Decide(ctx context.Context, seat int, s *game.GameState) (bot.Decision, error)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(ctx context.Context, seat int, s *game.GameState) (bot.Decision, error)

func (f AgentFunc) Decide(ctx context.Context, seat int, s *game.GameState) (bot.Decision, error) {
	return f(ctx, seat, s)
}

// BotAgent seats a computer player. Bots are not safe for concurrent use, so
// a call that outlives its turn holds the bot until it returns and the next
// call waits for it.
type BotAgent struct {
	mu  sync.Mutex
	bot bot.Bot
}

// NewBotAgent wraps b as an Agent.
func NewBotAgent(b bot.Bot) *BotAgent {
	return &BotAgent{bot: b}
}

func (a *BotAgent) Decide(ctx context.Context, seat int, s *game.GameState) (bot.Decision, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return bot.Decision{}, err
	}
	return a.bot.Decide(seat, s)
}
