package game

import (
	"fmt"

	"github.com/lox/holdem/internal/evaluator"
)

// UncontestedDescription is the winner description when everyone else folded.
const UncontestedDescription = "Opponents Folded"

// SplitPot divides pot evenly between winners, rounding down. The remainder
// is returned but not awarded to anyone.
func SplitPot(pot, winners int) (share, remainder int) {
	if winners <= 0 {
		return 0, pot
	}
	return pot / winners, pot % winners
}

// awardUncontested gives the whole pot to the last player standing.
func (s *GameState) awardUncontested() {
	for i := range s.Players {
		if !s.Players[i].HasFolded {
			s.finish([]int{i}, UncontestedDescription)
			return
		}
	}
}

// showdown scores every contender and splits the pot between the best.
func (s *GameState) showdown() error {
	best := -1
	var winners []int
	var description string

	for i := range s.Players {
		p := &s.Players[i]
		if p.HasFolded {
			continue
		}
		hv, err := evaluator.EvaluateHand(p.Hand, s.CommunityCards)
		if err != nil {
			return fmt.Errorf("evaluating seat %d: %w", i, err)
		}
		p.HandDescription = hv.Name()

		switch {
		case hv.Score > best:
			best = hv.Score
			winners = []int{i}
			description = hv.Name()
		case hv.Score == best:
			winners = append(winners, i)
		}
	}

	s.finish(winners, description)
	return nil
}

func (s *GameState) finish(winners []int, description string) {
	share, _ := SplitPot(s.Pot, len(winners))
	ids := make([]int, len(winners))
	for i, seat := range winners {
		s.Players[seat].Chips += share
		ids[i] = s.Players[seat].ID
	}
	s.WinnerIDs = ids
	s.WinnerDescription = description
	s.ActivePlayerIndex = -1
	s.Phase = GameOver
}
