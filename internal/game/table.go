package game

import "fmt"

// Seat describes who sits in a chair when the table is created.
type Seat struct {
	Name    string
	IsHuman bool
}

// TableOption customises NewTable.
type TableOption func(*tableConfig)

type tableConfig struct {
	seats []Seat
	chips []int
}

// WithSeats overrides the default seat names. The count must match the
// configured player count.
func WithSeats(seats ...Seat) TableOption {
	return func(c *tableConfig) {
		c.seats = seats
	}
}

// WithChips sets individual starting stacks instead of the configured one.
func WithChips(chips ...int) TableOption {
	return func(c *tableConfig) {
		c.chips = chips
	}
}

// DefaultSeats puts a human in seat 0 and bots everywhere else.
func DefaultSeats(n int) []Seat {
	seats := make([]Seat, n)
	for i := range seats {
		if i == 0 {
			seats[i] = Seat{Name: "You", IsHuman: true}
			continue
		}
		seats[i] = Seat{Name: fmt.Sprintf("AI Player %d", i)}
	}
	return seats
}

// NewTable validates cfg and seats the players. The returned state is in
// Setup, ready for Engine.StartHand.
func NewTable(cfg GameConfig, opts ...TableOption) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tc := &tableConfig{seats: DefaultSeats(cfg.PlayerCount)}
	for _, opt := range opts {
		opt(tc)
	}
	if len(tc.seats) != cfg.PlayerCount {
		return nil, fmt.Errorf("%w: %d seats for %d players", ErrInvalidConfig, len(tc.seats), cfg.PlayerCount)
	}
	if tc.chips != nil && len(tc.chips) != cfg.PlayerCount {
		return nil, fmt.Errorf("%w: %d chip counts for %d players", ErrInvalidConfig, len(tc.chips), cfg.PlayerCount)
	}

	players := make([]Player, cfg.PlayerCount)
	for i, seat := range tc.seats {
		chips := cfg.StartingChips
		if tc.chips != nil {
			chips = tc.chips[i]
		}
		if chips < 0 {
			return nil, fmt.Errorf("%w: seat %d has negative chips", ErrInvalidConfig, i)
		}
		players[i] = Player{
			ID:      i,
			Name:    seat.Name,
			IsHuman: seat.IsHuman,
			Chips:   chips,
		}
	}

	return &GameState{
		Config:            cfg,
		Players:           players,
		DealerIndex:       0,
		ActivePlayerIndex: -1,
		Phase:             Setup,
		MinRaise:          cfg.BigBlind,
	}, nil
}
