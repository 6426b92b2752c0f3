package synth

const (
	lehmerModulus    = 2147483647 // 2^31 - 1
	lehmerMultiplier = 16807
)

// Rand yields floats uniformly distributed in [0, 1).
type Rand interface {
	Float64() float64
}

// Lehmer is a Park-Miller multiplicative congruential generator.
// A Lehmer value is not safe for concurrent use; give each caller its own.
type Lehmer struct {
	state int64
}

// NewSeededRandom returns a generator whose sequence is fixed by seed.
// The seed is folded into [1, 2147483646]; zero and negative residues are shifted up.
func NewSeededRandom(seed int64) *Lehmer {
	s := seed % lehmerModulus
	if s <= 0 {
		s += lehmerModulus - 1
	}
	// -2147483646 lands on 0 after the shift, which would pin the state at 0.
	if s == 0 {
		s = lehmerModulus - 1
	}
	return &Lehmer{state: s}
}

// Float64 advances the generator and returns the next value in [0, 1).
func (l *Lehmer) Float64() float64 {
	l.state = l.state * lehmerMultiplier % lehmerModulus
	return float64(l.state-1) / float64(lehmerModulus-1)
}
