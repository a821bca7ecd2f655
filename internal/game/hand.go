package game

import (
	"fmt"

	"github.com/lox/holdem/internal/deck"
)

// startHand resets per-hand state, deals hole cards and posts blinds.
func (s *GameState) startHand(d *deck.Deck) error {
	n := len(s.Players)
	s.Deck = d
	s.DealerIndex = (s.DealerIndex + 1) % n
	s.CommunityCards = nil
	s.Pot = 0
	s.WinnerIDs = nil
	s.WinnerDescription = ""
	s.LastMove = nil

	for i := range s.Players {
		p := &s.Players[i]
		p.resetForHand()
		if p.Chips == 0 {
			p.HasFolded = true
			p.IsAllIn = true
		}
	}

	if err := s.dealHoleCards(); err != nil {
		return err
	}

	sb := (s.DealerIndex + 1) % n
	bb := (s.DealerIndex + 2) % n
	s.Players[s.DealerIndex].Role = Dealer
	s.Players[sb].Role = SmallBlind
	s.Players[bb].Role = BigBlind

	s.postBlind(sb, s.Config.SmallBlind, "SB")
	s.postBlind(bb, s.Config.BigBlind, "BB")

	s.CurrentBet = s.Config.BigBlind
	s.MinRaise = s.Config.BigBlind
	s.Phase = PreFlop
	return s.settle(bb + 1)
}

func (s *GameState) dealHoleCards() error {
	for i := range s.Players {
		p := &s.Players[i]
		if p.HasFolded {
			continue
		}
		cards, err := s.Deck.DealN(2)
		if err != nil {
			return fmt.Errorf("dealing to seat %d: %w", i, err)
		}
		p.Hand = cards
	}
	return nil
}

// postBlind takes up to amount from seat. A blind that empties the stack
// puts the player all-in.
func (s *GameState) postBlind(seat, amount int, label string) {
	p := &s.Players[seat]
	paid := min(amount, p.Chips)
	s.commit(p, paid)
	if !p.HasFolded {
		p.LastAction = fmt.Sprintf("%s %d", label, paid)
	}
}

// commit moves chips from the player into the pot.
func (s *GameState) commit(p *Player, amount int) {
	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalHandBet += amount
	s.Pot += amount
	if p.Chips == 0 {
		p.IsAllIn = true
	}
}
