package deck

import (
	"testing"

	"github.com/lox/holdem/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckIsPermutationOfCanonical(t *testing.T) {
	t.Parallel()
	for seed := range int64(50) {
		d := New(randutil.New(seed))
		require.Equal(t, Size, d.CardsRemaining())

		seen := make(map[Card]bool, Size)
		for _, c := range d.Cards() {
			require.True(t, c.Valid(), "invalid card %v", c)
			require.False(t, seen[c], "duplicate card %v (seed %d)", c, seed)
			seen[c] = true
		}
		for _, c := range Canonical() {
			assert.True(t, seen[c], "missing card %v (seed %d)", c, seed)
		}
	}
}

func TestShuffleDependsOnSeed(t *testing.T) {
	t.Parallel()
	a := New(randutil.New(1)).Cards()
	b := New(randutil.New(2)).Cards()
	c := New(randutil.New(1)).Cards()
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
}

func TestDealTakesFromTail(t *testing.T) {
	t.Parallel()
	d := FromCards(MustParseCards("2c3d4h"))

	c, err := d.Deal()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Hearts, Four), c)

	cards, err := d.DealN(2)
	require.NoError(t, err)
	assert.Equal(t, MustParseCards("3d2c"), cards)

	_, err = d.Deal()
	assert.ErrorIs(t, err, ErrDeckExhausted)
}

func TestDealNExhausted(t *testing.T) {
	t.Parallel()
	d := FromCards(MustParseCards("2c3d"))
	_, err := d.DealN(3)
	require.ErrorIs(t, err, ErrDeckExhausted)
	assert.Equal(t, 2, d.CardsRemaining(), "failed deal must not consume cards")
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()
	d := New(randutil.New(9))
	clone := d.Clone()
	require.NoError(t, d.Burn())
	assert.Equal(t, Size-1, d.CardsRemaining())
	assert.Equal(t, Size, clone.CardsRemaining())
}

func TestWithout(t *testing.T) {
	t.Parallel()
	known := MustParseCards("AsKs2c")
	rest := Without(known...)
	assert.Len(t, rest, Size-3)
	set := NewSet(rest...)
	for _, c := range known {
		assert.False(t, set.Contains(c))
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:     "ten as two digits",
			input:    "10h 9c",
			expected: []Card{{Suit: Hearts, Rank: Ten}, {Suit: Clubs, Rank: Nine}},
		},
		{
			name:     "case insensitive",
			input:    "asKH",
			expected: []Card{{Suit: Spades, Rank: Ace}, {Suit: Hearts, Rank: King}},
		},
		{name: "invalid rank", input: "XsKs", wantErr: true},
		{name: "invalid suit", input: "AxKs", wantErr: true},
		{name: "odd length", input: "AsK", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cards)
		})
	}
}

func TestCardStringAndValue(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "A♠", NewCard(Spades, Ace).String())
	assert.Equal(t, "T♥", NewCard(Hearts, Ten).String())
	assert.Equal(t, "Th", NewCard(Hearts, Ten).Notation())
	assert.Equal(t, MustParseCards("2c"), MustParseCards(NewCard(Clubs, Two).Notation()))
	assert.Equal(t, 14, NewCard(Clubs, Ace).Value())
	assert.Equal(t, 11, NewCard(Clubs, Jack).Value())
	assert.Equal(t, 2, NewCard(Diamonds, Two).Value())
}

func TestStartingHandPercentile(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "AKs", StartingHand(MustParseCards("KsAs")))
	assert.Equal(t, "72o", StartingHand(MustParseCards("2c7d")))
	assert.Equal(t, "TT", StartingHand(MustParseCards("ThTd")))
	assert.Equal(t, 1.0, Percentile(MustParseCards("AhAd")))
	assert.Equal(t, 0.0, Percentile(MustParseCards("7h2d")))
	assert.Greater(t, Percentile(MustParseCards("AsKs")), Percentile(MustParseCards("AsKd")))
}
