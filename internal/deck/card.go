package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in deck-building order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Letter returns the ASCII suit letter used in card notation.
func (s Suit) Letter() string {
	switch s {
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. The underlying integer is the rank's
// comparison value: 2-10 literally, Jack=11, Queen=12, King=13, Ace=14.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + int(r)))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is an immutable playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Notation returns the ASCII form accepted by ParseCards (e.g., "As").
func (c Card) Notation() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Value returns the numeric value of the card for comparison (2-14, aces high).
func (c Card) Value() int {
	return int(c.Rank)
}

// Valid reports whether the card is one of the 52 canonical cards.
func (c Card) Valid() bool {
	return c.Suit >= Hearts && c.Suit <= Spades && c.Rank >= Two && c.Rank <= Ace
}

// index maps a card to 0-51.
func (c Card) index() int {
	return int(c.Suit)*13 + int(c.Rank-Two)
}

// Set is a bitset of cards.
type Set uint64

// NewSet creates a Set from a slice of cards
func NewSet(cards ...Card) Set {
	var s Set
	for _, c := range cards {
		s = s.Add(c)
	}
	return s
}

// Add returns the set with c added.
func (s Set) Add(c Card) Set {
	return s | 1<<c.index()
}

// Contains checks if a card is in the set
func (s Set) Contains(c Card) bool {
	return s&(1<<c.index()) != 0
}
