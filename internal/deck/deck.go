package deck

import (
	"errors"
	"fmt"

	"github.com/lox/holdem/internal/randutil"
)

// ErrDeckExhausted is returned when more cards are requested than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// Size is the number of cards in a full deck.
const Size = 52

// Deck is a stack of cards dealt from the tail. A deck only ever shrinks;
// build a new one for the next hand.
type Deck struct {
	cards []Card
}

// Canonical returns the 52 cards in suit-major order.
func Canonical() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// New creates a uniformly shuffled 52-card deck.
func New(rng randutil.Source) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{cards: Canonical()}
	Shuffle(d.cards, rng)
	return d
}

// FromCards builds a deck whose next deal is the last element of cards.
// Intended for tests that need a stacked deck.
func FromCards(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Shuffle permutes cards in place using Fisher-Yates.
func Shuffle(cards []Card, rng randutil.Source) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Without returns the canonical cards not present in known.
func Without(known ...Card) []Card {
	used := NewSet(known...)
	remaining := make([]Card, 0, Size-len(known))
	for _, c := range Canonical() {
		if !used.Contains(c) {
			remaining = append(remaining, c)
		}
	}
	return remaining
}

// Deal removes and returns the top (last) card.
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, nil
}

// DealN deals n cards in deal order.
func (d *Deck) DealN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrDeckExhausted, n, len(d.cards))
	}
	cards := make([]Card, 0, n)
	for range n {
		c, _ := d.Deal()
		cards = append(cards, c)
	}
	return cards, nil
}

// Burn discards the top card.
func (d *Deck) Burn() error {
	_, err := d.Deal()
	return err
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, bottom first.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

// Clone returns an independent copy of the deck.
func (d *Deck) Clone() *Deck {
	if d == nil {
		return nil
	}
	return &Deck{cards: append([]Card(nil), d.cards...)}
}
