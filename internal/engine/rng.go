package engine

import "math"

const (
	lcgMultiplier int64 = 1103515245
	lcgIncrement  int64 = 12345
	lcgModulus    int64 = 1 << 31
)

// Stream is a deterministic pseudo-random sequence derived from a string
// seed. Two streams built from the same seed produce bit-identical output,
// so simulations are reproducible regardless of where or when they run.
type Stream struct {
	state int64
}

// NewStream folds the seed string into an initial state and returns a
// ready-to-use stream. The fold and the recurrence use only operations that
// behave identically across platforms.
func NewStream(seed string) *Stream {
	var state int64
	for _, b := range []byte(seed) {
		state = (state*31 + int64(b)) % lcgModulus
	}
	return &Stream{state: state}
}

// Next advances the recurrence and returns a float in [0, 1).
func (s *Stream) Next() float64 {
	s.state = (s.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(s.state) / float64(lcgModulus)
}

// Gaussian returns one standard normal draw using the Box-Muller transform
// over two uniform draws from the stream.
func (s *Stream) Gaussian() float64 {
	u1 := s.Next()
	u2 := s.Next()
	if u1 < 1e-12 {
		u1 = 1e-12
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
