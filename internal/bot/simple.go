package bot

import (
	"slices"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
)

// CallBot checks when it can and calls everything else.
type CallBot struct{}

// NewCallBot creates a calling station.
func NewCallBot() *CallBot {
	return &CallBot{}
}

func (CallBot) Decide(seat int, s *game.GameState) (Decision, error) {
	if _, err := seatToAct(seat, s); err != nil {
		return Decision{}, err
	}
	if s.ToCall(seat) == 0 {
		return Decision{Action: game.CheckAction, Reasoning: "call-bot checking"}, nil
	}
	return Decision{Action: game.CallAction, Reasoning: "call-bot calling"}, nil
}

// FoldBot checks when it can and folds otherwise.
type FoldBot struct{}

// NewFoldBot creates a bot that never puts chips in voluntarily.
func NewFoldBot() *FoldBot {
	return &FoldBot{}
}

func (FoldBot) Decide(seat int, s *game.GameState) (Decision, error) {
	if _, err := seatToAct(seat, s); err != nil {
		return Decision{}, err
	}
	if s.ToCall(seat) == 0 {
		return Decision{Action: game.CheckAction, Reasoning: "fold-bot checking"}, nil
	}
	return Decision{Action: game.FoldAction, Reasoning: "fold-bot folding"}, nil
}

// RandBot picks uniformly among the legal actions. Raises are sized
// uniformly between the minimum raise and all-in.
type RandBot struct {
	rng randutil.Source
}

// NewRandBot creates a random bot.
func NewRandBot(rng randutil.Source) *RandBot {
	if rng == nil {
		panic("rng is required for random bot creation")
	}
	return &RandBot{rng: rng}
}

func (r *RandBot) Decide(seat int, s *game.GameState) (Decision, error) {
	p, err := seatToAct(seat, s)
	if err != nil {
		return Decision{}, err
	}

	legal := []game.ActionKind{game.Fold}
	toCall := s.ToCall(seat)
	if toCall == 0 {
		legal = append(legal, game.Check)
	} else {
		legal = append(legal, game.Call)
	}
	if p.Chips > toCall {
		legal = append(legal, game.Raise)
	}

	kind := legal[r.rng.IntN(len(legal))]
	if kind != game.Raise {
		return Decision{Action: game.Action{Kind: kind}, Reasoning: "rand-bot random action"}, nil
	}

	most := p.Chips - toCall
	amount := most
	if most > s.MinRaise {
		amount = s.MinRaise + r.rng.IntN(most-s.MinRaise+1)
	}
	return Decision{Action: game.RaiseBy(amount), Reasoning: "rand-bot random raise"}, nil
}

// ChartBot shoves premium starting hands when short stacked and otherwise
// checks or calls.
type ChartBot struct{}

// NewChartBot creates a push-fold chart bot.
func NewChartBot() *ChartBot {
	return &ChartBot{}
}

// Premium hands pushed by ChartBot.
var pushChart = []string{"AA", "KK", "QQ", "JJ", "TT", "AKs", "AKo", "AQs", "AQo", "KQs"}

const pushStackBigBlinds = 20

func (ChartBot) Decide(seat int, s *game.GameState) (Decision, error) {
	p, err := seatToAct(seat, s)
	if err != nil {
		return Decision{}, err
	}
	toCall := s.ToCall(seat)

	if s.Phase == game.PreFlop {
		short := p.Chips <= pushStackBigBlinds*s.Config.BigBlind
		if short && slices.Contains(pushChart, deck.StartingHand(p.Hand)) && p.Chips > toCall {
			return Decision{Action: game.RaiseBy(p.Chips), Reasoning: "chart-bot push"}, nil
		}
		if toCall > 0 && s.CurrentBet > s.Config.BigBlind {
			return Decision{Action: game.FoldAction, Reasoning: "chart-bot folding to a raise"}, nil
		}
	}

	if toCall == 0 {
		return Decision{Action: game.CheckAction, Reasoning: "chart-bot checking"}, nil
	}
	return Decision{Action: game.CallAction, Reasoning: "chart-bot calling"}, nil
}
