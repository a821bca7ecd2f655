package game

import "fmt"

// apply mutates s with the active player's action and advances the hand.
func (s *GameState) apply(seat int, a Action) error {
	p := &s.Players[seat]
	toCall := s.ToCall(seat)
	prevBet := s.CurrentBet

	switch a.Kind {
	case Fold:
		p.HasFolded = true
		p.LastAction = "Fold"

	case Check:
		if toCall > 0 {
			return fmt.Errorf("%w: cannot check facing %d", ErrIllegalAction, toCall)
		}
		p.LastAction = "Check"

	case Call:
		paid := min(toCall, p.Chips)
		s.commit(p, paid)
		if paid == 0 {
			p.LastAction = "Check"
		} else {
			p.LastAction = fmt.Sprintf("Call %d", paid)
		}

	case Raise:
		if err := s.raise(seat, a.Amount); err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: unknown action %v", ErrIllegalAction, a.Kind)
	}

	p.HasActed = true
	s.LastMove = &Move{
		Seat:        seat,
		Phase:       s.Phase,
		Kind:        a.Kind,
		Description: p.LastAction,
		Bet:         p.CurrentBet,
		Raised:      s.CurrentBet > prevBet,
	}
	return s.settle(seat + 1)
}

// raise sets the seat's bet to CurrentBet+amount, capped by its stack.
// Anything short of the minimum raise must be an all-in.
func (s *GameState) raise(seat, amount int) error {
	p := &s.Players[seat]
	if amount == 0 {
		amount = s.MinRaise
	}
	if amount < 0 {
		return fmt.Errorf("%w: negative raise %d", ErrIllegalAction, amount)
	}

	// Anything beyond the stack is an all-in.
	if reach := p.Chips + p.CurrentBet - s.CurrentBet; amount > reach {
		amount = max(reach, 0)
	}

	target := s.CurrentBet + amount
	paid := min(target-p.CurrentBet, p.Chips)
	if amount < s.MinRaise && paid < p.Chips {
		return fmt.Errorf("%w: raise of %d below minimum %d", ErrIllegalAction, amount, s.MinRaise)
	}

	prevBet := s.CurrentBet
	s.commit(p, paid)
	if p.CurrentBet <= prevBet {
		// All-in for no more than the current bet plays as a call.
		p.LastAction = fmt.Sprintf("Call %d", paid)
		return nil
	}

	if increment := p.CurrentBet - prevBet; increment > s.MinRaise {
		s.MinRaise = increment
	}
	s.CurrentBet = p.CurrentBet
	p.LastAction = fmt.Sprintf("Raise to %d", p.CurrentBet)

	for i := range s.Players {
		if i != seat && s.Players[i].CanAct() {
			s.Players[i].HasActed = false
		}
	}
	return nil
}

// RoundComplete reports whether every contender has matched the bet or is
// all-in, and everyone still able to act has done so.
func (s *GameState) RoundComplete() bool {
	for i := range s.Players {
		p := &s.Players[i]
		if !p.CanAct() {
			continue
		}
		if p.CurrentBet != s.CurrentBet || !p.HasActed {
			return false
		}
	}
	return true
}

// settle runs after every mutation. It ends the hand when one contender is
// left, hands the action to the next seat from `from`, or closes the round
// and deals the next street. Streets nobody can bet on are dealt in turn.
func (s *GameState) settle(from int) error {
	for {
		if s.Contenders() == 1 {
			s.awardUncontested()
			return nil
		}
		if !s.RoundComplete() {
			s.ActivePlayerIndex = s.nextActivePlayer(from)
			return nil
		}
		if s.Phase == River {
			return s.showdown()
		}
		if err := s.nextStreet(); err != nil {
			return err
		}
		from = s.DealerIndex + 1
	}
}

// nextStreet resets the round, burns one card and deals the board.
func (s *GameState) nextStreet() error {
	var cards int
	switch s.Phase {
	case PreFlop:
		cards = 3
	case Flop, Turn:
		cards = 1
	default:
		return fmt.Errorf("no street follows %s", s.Phase)
	}

	if err := s.Deck.Burn(); err != nil {
		return fmt.Errorf("burning before %s: %w", s.Phase+1, err)
	}
	dealt, err := s.Deck.DealN(cards)
	if err != nil {
		return fmt.Errorf("dealing %s: %w", s.Phase+1, err)
	}

	for i := range s.Players {
		s.Players[i].resetForRound()
	}
	s.CommunityCards = append(s.CommunityCards, dealt...)
	s.CurrentBet = 0
	s.MinRaise = s.Config.BigBlind
	s.Phase++
	return nil
}
