package statistics

import (
	"fmt"
	"math"
	"slices"
)

// BigPotBB is the pot size, in big blinds, from which a pot counts as big.
const BigPotBB = 50

// HandResult is one seat's outcome of a single hand.
type HandResult struct {
	NetChips       int
	NetBB          float64 // net big blinds won or lost
	Position       string  // role at the table: D, SB, BB or Field
	WentToShowdown bool
	Won            bool
	FinalPotSize   int
	PotBB          float64
	StreetReached  string
}

// PositionStats tracks results for one table position.
type PositionStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Statistics accumulates results for one seat.
type Statistics struct {
	Hands    int
	NetChips int
	SumBB    float64
	SumBB2   float64   // sum of squares for variance
	Values   []float64 // every result, for median and percentiles

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64 // wins and losses at showdown
	NonShowdownBB   float64 // wins and losses without showdown
	AllBB           float64

	PositionResults map[string]*PositionStats

	MaxPotChips int
	MaxPotBB    float64
	BigPots     int
	BigPotsBB   float64
}

// Mean returns the average result in big blinds per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// BBPer100 is the conventional win rate.
func (s *Statistics) BBPer100() float64 {
	return s.Mean() * 100
}

// Add incorporates one hand.
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.NetChips += result.NetChips
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if result.Won {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	if s.PositionResults == nil {
		s.PositionResults = make(map[string]*PositionStats)
	}
	ps := s.PositionResults[result.Position]
	if ps == nil {
		ps = &PositionStats{}
		s.PositionResults[result.Position] = ps
	}
	ps.Hands++
	ps.SumBB += netBB
	ps.SumBB2 += netBB * netBB

	if result.FinalPotSize > s.MaxPotChips {
		s.MaxPotChips = result.FinalPotSize
		s.MaxPotBB = result.PotBB
	}
	if result.PotBB >= BigPotBB {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.NetChips += other.NetChips
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.AllBB += other.AllBB
	for pos, ops := range other.PositionResults {
		if s.PositionResults == nil {
			s.PositionResults = make(map[string]*PositionStats)
		}
		ps := s.PositionResults[pos]
		if ps == nil {
			ps = &PositionStats{}
			s.PositionResults[pos] = ps
		}
		ps.Hands += ops.Hands
		ps.SumBB += ops.SumBB
		ps.SumBB2 += ops.SumBB2
	}
	if other.MaxPotChips > s.MaxPotChips {
		s.MaxPotChips = other.MaxPotChips
		s.MaxPotBB = other.MaxPotBB
	}
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}

// Median returns the median result.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the interpolated value at p in [0,1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result from a position.
func (s *Statistics) PositionMean(position string) float64 {
	ps := s.PositionResults[position]
	if ps == nil || ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// IsLedgerBalanced checks that showdown and non-showdown results add up.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks internal consistency.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	positionHands := 0
	for _, ps := range s.PositionResults {
		positionHands += ps.Hands
	}
	if positionHands != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)", positionHands, s.Hands)
	}
	return nil
}
