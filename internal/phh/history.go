package phh

import (
	"fmt"
	"time"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/runner"
)

// FromHand converts a played hand. before is the state the hand was started
// from and after the finished state; seats without chips at the start are
// left out.
func FromHand(rec runner.HandRecord, before, after *game.GameState, table string, at time.Time) (*HandHistory, error) {
	n := len(after.Players)
	if len(before.Players) != n {
		return nil, fmt.Errorf("phh: seat count changed from %d to %d", len(before.Players), n)
	}
	if after.Phase != game.GameOver {
		return nil, fmt.Errorf("phh: hand %s not finished", rec.HandID)
	}

	var order []int
	for k := range n {
		seat := (after.DealerIndex + 1 + k) % n
		if before.Players[seat].Chips > 0 {
			order = append(order, seat)
		}
	}
	index := make(map[int]int, len(order))
	for i, seat := range order {
		index[seat] = i
	}

	cfg := after.Config
	h := &HandHistory{
		Variant:           Variant,
		Table:             table,
		SeatCount:         n,
		Seats:             make([]int, len(order)),
		Antes:             make([]int, len(order)),
		BlindsOrStraddles: make([]int, len(order)),
		MinBet:            cfg.BigBlind,
		StartingStacks:    make([]int, len(order)),
		FinishingStacks:   make([]int, len(order)),
		Winnings:          make([]int, len(order)),
		Players:           make([]string, len(order)),
		HandID:            rec.HandID,
		Timestamp:         at,
	}

	for i, seat := range order {
		start := before.Players[seat].Chips
		p := after.Players[seat]
		h.Seats[i] = seat + 1
		h.Players[i] = p.Name
		h.StartingStacks[i] = start
		h.FinishingStacks[i] = p.Chips
		// chips received from the pot
		h.Winnings[i] = p.Chips - (start - p.TotalHandBet)

		switch p.Role {
		case game.SmallBlind:
			h.BlindsOrStraddles[i] = min(cfg.SmallBlind, start)
		case game.BigBlind:
			h.BlindsOrStraddles[i] = min(cfg.BigBlind, start)
		}
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", i+1, notation(p.Hand)))
	}

	dealt := 0
	board := after.CommunityCards
	dealTo := func(target int) {
		for dealt < target && dealt < len(board) {
			next := dealt + 1
			if dealt == 0 {
				next = 3
			}
			h.Actions = append(h.Actions, "d db "+notation(board[dealt:next]))
			dealt = next
		}
	}

	for _, a := range rec.Actions {
		dealTo(boardSize(a.Phase))
		player := index[a.Seat] + 1
		switch {
		case a.Action.Kind == game.Fold:
			h.Actions = append(h.Actions, fmt.Sprintf("p%d f", player))
		case a.Action.Kind == game.Raise && a.Raised:
			h.Actions = append(h.Actions, fmt.Sprintf("p%d cbr %d", player, a.Bet))
		default:
			h.Actions = append(h.Actions, fmt.Sprintf("p%d cc", player))
		}
	}
	dealTo(len(board))

	if after.WinnerDescription != game.UncontestedDescription {
		for i, seat := range order {
			if p := after.Players[seat]; !p.HasFolded {
				h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", i+1, notation(p.Hand)))
			}
		}
	}

	if !at.IsZero() {
		utc := at.UTC()
		h.Time = utc.Format("15:04:05")
		h.TimeZone = "UTC"
		h.Day = utc.Day()
		h.Month = int(utc.Month())
		h.Year = utc.Year()
	}
	return h, nil
}

func boardSize(p game.Phase) int {
	switch p {
	case game.Flop:
		return 3
	case game.Turn:
		return 4
	case game.River:
		return 5
	default:
		return 0
	}
}

func notation(cards []deck.Card) string {
	out := ""
	for _, c := range cards {
		out += c.Notation()
	}
	return out
}
