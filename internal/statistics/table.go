package statistics

import (
	"fmt"

	"github.com/lox/holdem/internal/game"
)

// Field is the position name for seats without a role.
const Field = "Field"

// Table aggregates per-seat statistics across hands.
type Table struct {
	Names []string
	Seats []Statistics
	Hands int

	// Chips lost to uneven pot splits.
	Dropped int
}

// NewTable creates an empty table summary for the given seat names.
func NewTable(names []string) *Table {
	return &Table{
		Names: names,
		Seats: make([]Statistics, len(names)),
	}
}

// Record adds a finished hand. before is the snapshot the hand was started
// from and after is the finished hand.
func (t *Table) Record(before, after *game.GameState) error {
	if len(before.Players) != len(t.Seats) || len(after.Players) != len(t.Seats) {
		return fmt.Errorf("table has %d seats, hand has %d", len(t.Seats), len(after.Players))
	}
	if after.Phase != game.GameOver {
		return fmt.Errorf("hand %d not finished: %s", after.HandNumber, after.Phase)
	}

	t.Hands++
	startTotal, endTotal := 0, 0
	for i := range after.Players {
		startTotal += before.Players[i].Chips
		endTotal += after.Players[i].Chips
		if before.Players[i].Chips == 0 {
			continue
		}
		t.Seats[i].Add(FromHand(before, after, i))
	}
	t.Dropped += startTotal - endTotal
	return nil
}

// Merge adds another table's totals, seat by seat.
func (t *Table) Merge(other *Table) error {
	if len(other.Seats) != len(t.Seats) {
		return fmt.Errorf("cannot merge %d seats into %d", len(other.Seats), len(t.Seats))
	}
	for i := range t.Seats {
		t.Seats[i].Merge(&other.Seats[i])
	}
	t.Hands += other.Hands
	t.Dropped += other.Dropped
	return nil
}

// FromHand derives a seat's result from the snapshots around a hand.
func FromHand(before, after *game.GameState, seat int) HandResult {
	bb := float64(after.Config.BigBlind)
	p := after.Players[seat]
	net := p.Chips - before.Players[seat].Chips

	position := p.Role.String()
	if position == "" {
		position = Field
	}

	return HandResult{
		NetChips:       net,
		NetBB:          float64(net) / bb,
		Position:       position,
		WentToShowdown: !p.HasFolded && after.WinnerDescription != game.UncontestedDescription,
		Won:            after.IsWinner(p.ID),
		FinalPotSize:   after.Pot,
		PotBB:          float64(after.Pot) / bb,
		StreetReached:  StreetReached(after),
	}
}

// StreetReached names the last street dealt.
func StreetReached(s *game.GameState) string {
	switch len(s.CommunityCards) {
	case 0:
		return game.PreFlop.String()
	case 3:
		return game.Flop.String()
	case 4:
		return game.Turn.String()
	default:
		return game.River.String()
	}
}
