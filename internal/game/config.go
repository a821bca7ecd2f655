package game

import "fmt"

const (
	MinPlayers = 2
	MaxPlayers = 9
)

// GameConfig is fixed for the lifetime of a table.
type GameConfig struct {
	PlayerCount   int
	StartingChips int
	SmallBlind    int
	BigBlind      int
}

// DefaultConfig mirrors the stock four-handed table.
func DefaultConfig() GameConfig {
	return GameConfig{
		PlayerCount:   4,
		StartingChips: 2000,
		SmallBlind:    10,
		BigBlind:      20,
	}
}

// Validate rejects configurations no hand can be played with.
func (c GameConfig) Validate() error {
	switch {
	case c.PlayerCount < MinPlayers || c.PlayerCount > MaxPlayers:
		return fmt.Errorf("%w: player count %d outside [%d,%d]", ErrInvalidConfig, c.PlayerCount, MinPlayers, MaxPlayers)
	case c.StartingChips <= 0:
		return fmt.Errorf("%w: starting chips must be positive, got %d", ErrInvalidConfig, c.StartingChips)
	case c.SmallBlind <= 0:
		return fmt.Errorf("%w: small blind must be positive, got %d", ErrInvalidConfig, c.SmallBlind)
	case c.BigBlind <= 0:
		return fmt.Errorf("%w: big blind must be positive, got %d", ErrInvalidConfig, c.BigBlind)
	case c.BigBlind < c.SmallBlind:
		return fmt.Errorf("%w: big blind %d below small blind %d", ErrInvalidConfig, c.BigBlind, c.SmallBlind)
	}
	return nil
}
