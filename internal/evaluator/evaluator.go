package evaluator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/holdem/internal/deck"
)

var (
	// ErrTooFewCards is returned when fewer than five cards are evaluated.
	ErrTooFewCards = errors.New("at least 5 cards required")
	// ErrInvalidInput covers duplicate or malformed cards and bad arguments.
	ErrInvalidInput = errors.New("invalid input")
)

// Category enumerates hand categories from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable hand description.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Category score bases. Within a category the offset only encodes the
// values listed in each formula; kickers beyond that score identically.
const (
	royalFlushScore    = 9000
	straightFlushBase  = 8000
	fourOfAKindBase    = 7000
	fullHouseBase      = 6000
	flushBase          = 5000
	straightBase       = 4000
	threeOfAKindBase   = 3000
	twoPairBase        = 2000
	pairBase           = 1000
	twoPairHighWeight  = 10
	wheelHighCardValue = 5
)

// HandValue is the result of evaluating a set of cards.
type HandValue struct {
	Score    int
	Category Category
	Cards    []deck.Card // the scoring five cards
}

// Name returns the category name.
func (hv HandValue) Name() string {
	return hv.Category.String()
}

// Evaluate scores five or more cards. With more than five cards every
// 5-card subset is scored and the highest one wins (21 subsets for 7 cards).
func Evaluate(cards []deck.Card) (HandValue, error) {
	if len(cards) < 5 {
		return HandValue{}, fmt.Errorf("%w: got %d", ErrTooFewCards, len(cards))
	}
	var seen deck.Set
	for _, c := range cards {
		if !c.Valid() {
			return HandValue{}, fmt.Errorf("%w: card %v", ErrInvalidInput, c)
		}
		if seen.Contains(c) {
			return HandValue{}, fmt.Errorf("%w: duplicate card %v", ErrInvalidInput, c)
		}
		seen = seen.Add(c)
	}
	return best(cards), nil
}

// MustEvaluate is Evaluate for inputs already known to be valid.
func MustEvaluate(cards []deck.Card) HandValue {
	hv, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return hv
}

// EvaluateHand scores hole cards together with the board.
func EvaluateHand(hole, board []deck.Card) (HandValue, error) {
	all := make([]deck.Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)
	return Evaluate(all)
}

func best(cards []deck.Card) HandValue {
	if len(cards) == 5 {
		return evaluate5([5]deck.Card(cards))
	}

	result := HandValue{Score: -1}
	var combo [5]deck.Card
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						combo = [5]deck.Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						if hv := evaluate5(combo); hv.Score > result.Score {
							result = hv
						}
					}
				}
			}
		}
	}
	return result
}

type rankGroup struct {
	value int
	count int
}

func evaluate5(hand [5]deck.Card) HandValue {
	sorted := hand
	slices.SortFunc(sorted[:], func(a, b deck.Card) int { return b.Value() - a.Value() })

	var values [5]int
	flush := true
	for i, c := range sorted {
		values[i] = c.Value()
		if c.Suit != sorted[0].Suit {
			flush = false
		}
	}

	straight, high := straightHigh(values)
	groups := groupRanks(values)

	hv := HandValue{Cards: sorted[:]}
	switch {
	case flush && straight && values[0] == int(deck.Ace) && values[4] == int(deck.Ten):
		hv.Category, hv.Score = RoyalFlush, royalFlushScore
	case flush && straight:
		hv.Category, hv.Score = StraightFlush, straightFlushBase+high
	case groups[0].count == 4:
		hv.Category, hv.Score = FourOfAKind, fourOfAKindBase+groups[0].value
	case groups[0].count == 3 && groups[1].count >= 2:
		hv.Category, hv.Score = FullHouse, fullHouseBase+groups[0].value
	case flush:
		hv.Category, hv.Score = Flush, flushBase+values[0]
	case straight:
		hv.Category, hv.Score = Straight, straightBase+high
	case groups[0].count == 3:
		hv.Category, hv.Score = ThreeOfAKind, threeOfAKindBase+groups[0].value
	case groups[0].count == 2 && groups[1].count == 2:
		hv.Category, hv.Score = TwoPair, twoPairBase+groups[0].value*twoPairHighWeight+groups[1].value
	case groups[0].count == 2:
		hv.Category, hv.Score = Pair, pairBase+groups[0].value
	default:
		hv.Category, hv.Score = HighCard, values[0]
	}
	return hv
}

// straightHigh reports whether descending values form a straight and its top
// card. The wheel (A-5-4-3-2) counts with a top card of 5.
func straightHigh(values [5]int) (bool, int) {
	if values == [5]int{14, 5, 4, 3, 2} {
		return true, wheelHighCardValue
	}
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]-1 {
			return false, 0
		}
	}
	return true, values[0]
}

// groupRanks orders rank groups by count, then by value, both descending.
func groupRanks(values [5]int) []rankGroup {
	groups := make([]rankGroup, 0, 5)
	for _, v := range values {
		idx := slices.IndexFunc(groups, func(g rankGroup) bool { return g.value == v })
		if idx < 0 {
			groups = append(groups, rankGroup{value: v, count: 1})
			continue
		}
		groups[idx].count++
	}
	slices.SortFunc(groups, func(a, b rankGroup) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return b.value - a.value
	})
	// Pad so callers can always inspect groups[1].
	for len(groups) < 2 {
		groups = append(groups, rankGroup{})
	}
	return groups
}
