package game

import (
	"slices"

	"github.com/lox/holdem/internal/deck"
)

// Phase is the stage of the current hand.
type Phase int

const (
	Setup Phase = iota
	PreFlop
	Flop
	Turn
	River
	Showdown
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Setup:
		return "Setup"
	case PreFlop:
		return "Pre-flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	case Showdown:
		return "Showdown"
	case GameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}

// IsBetting reports whether actions may be applied in this phase.
func (p Phase) IsBetting() bool {
	return p >= PreFlop && p <= River
}

// Role marks the dealer button and the blinds.
type Role int

const (
	NoRole Role = iota
	Dealer
	SmallBlind
	BigBlind
)

func (r Role) String() string {
	switch r {
	case Dealer:
		return "D"
	case SmallBlind:
		return "SB"
	case BigBlind:
		return "BB"
	default:
		return ""
	}
}

// Player is one seat at the table. Only Chips carries over between hands.
type Player struct {
	ID              int
	Name            string
	IsHuman         bool
	Chips           int
	Hand            []deck.Card
	CurrentBet      int // this betting round
	TotalHandBet    int // whole hand
	HasFolded       bool
	IsAllIn         bool
	HasActed        bool
	Role            Role
	LastAction      string
	HandDescription string
}

// CanAct reports whether the player still makes decisions this hand.
func (p *Player) CanAct() bool {
	return !p.HasFolded && !p.IsAllIn
}

func (p *Player) resetForHand() {
	p.Hand = nil
	p.CurrentBet = 0
	p.TotalHandBet = 0
	p.HasFolded = false
	p.IsAllIn = false
	p.HasActed = false
	p.Role = NoRole
	p.LastAction = ""
	p.HandDescription = ""
}

func (p *Player) resetForRound() {
	p.CurrentBet = 0
	p.LastAction = ""
	p.HasActed = false
}

// Move describes the most recent applied action. The player's LastAction is
// cleared when a new street is dealt; Move is not.
type Move struct {
	Seat        int
	Phase       Phase // street the action was taken on
	Kind        ActionKind
	Description string // e.g. "Call 20", "Raise to 80"
	Bet         int    // seat's street contribution after the action
	Raised      bool   // the action increased the current bet
}

// GameState is a snapshot of a table. Engine operations never modify the
// snapshot they are given; they return a new one.
type GameState struct {
	Config            GameConfig
	Players           []Player
	Deck              *deck.Deck
	CommunityCards    []deck.Card
	Pot               int
	CurrentBet        int
	DealerIndex       int
	ActivePlayerIndex int // -1 when nobody is to act
	Phase             Phase
	WinnerIDs         []int
	WinnerDescription string
	MinRaise          int
	LastMove          *Move // nil until the first action of a hand

	HandID     string
	HandNumber int
}

// Clone returns a deep copy.
func (s *GameState) Clone() *GameState {
	c := *s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.Hand = slices.Clone(p.Hand)
		c.Players[i] = p
	}
	if s.Deck != nil {
		c.Deck = s.Deck.Clone()
	}
	c.CommunityCards = slices.Clone(s.CommunityCards)
	c.WinnerIDs = slices.Clone(s.WinnerIDs)
	if s.LastMove != nil {
		m := *s.LastMove
		c.LastMove = &m
	}
	return &c
}

// ActivePlayer returns the seat to act, or nil.
func (s *GameState) ActivePlayer() *Player {
	if s.ActivePlayerIndex < 0 || s.ActivePlayerIndex >= len(s.Players) {
		return nil
	}
	return &s.Players[s.ActivePlayerIndex]
}

// ToCall is the amount seat must add to match the current bet.
func (s *GameState) ToCall(seat int) int {
	if seat < 0 || seat >= len(s.Players) {
		return 0
	}
	return max(s.CurrentBet-s.Players[seat].CurrentBet, 0)
}

// LegalActions lists what the active seat may do. Empty when nobody is to act.
func (s *GameState) LegalActions() []ActionKind {
	p := s.ActivePlayer()
	if p == nil || !s.Phase.IsBetting() {
		return nil
	}
	toCall := s.ToCall(s.ActivePlayerIndex)
	actions := []ActionKind{Fold}
	if toCall == 0 {
		actions = append(actions, Check)
	} else {
		actions = append(actions, Call)
	}
	if p.Chips > toCall {
		actions = append(actions, Raise)
	}
	return actions
}

// IsWinner reports whether id took a share of the last pot.
func (s *GameState) IsWinner(id int) bool {
	return slices.Contains(s.WinnerIDs, id)
}

// Contenders counts players who have not folded.
func (s *GameState) Contenders() int {
	n := 0
	for i := range s.Players {
		if !s.Players[i].HasFolded {
			n++
		}
	}
	return n
}

// TotalChips sums stacks and the pot in play.
func (s *GameState) TotalChips() int {
	total := 0
	for i := range s.Players {
		total += s.Players[i].Chips
	}
	if s.Phase.IsBetting() {
		total += s.Pot
	}
	return total
}

// nextActivePlayer returns the first seat at or after from that can still
// act, wrapping around the table, or -1.
func (s *GameState) nextActivePlayer(from int) int {
	n := len(s.Players)
	from = ((from % n) + n) % n
	for i := range n {
		seat := (from + i) % n
		if s.Players[seat].CanAct() {
			return seat
		}
	}
	return -1
}
