package randutil

// Sequence is a scripted Source for tests. Float64 replays the given values
// in order and IntN always returns 0 (identity shuffles). Once exhausted it
// keeps returning the last value.
type Sequence struct {
	floats []float64
	pos    int
}

// NewSequence returns a Sequence replaying floats.
func NewSequence(floats ...float64) *Sequence {
	return &Sequence{floats: floats}
}

func (s *Sequence) IntN(n int) int {
	return 0
}

func (s *Sequence) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	if s.pos >= len(s.floats) {
		return s.floats[len(s.floats)-1]
	}
	f := s.floats[s.pos]
	s.pos++
	return f
}

// Drawn reports how many Float64 values have been consumed.
func (s *Sequence) Drawn() int {
	return s.pos
}
