package engine

// RandomSource is the randomness capability the engine consumes. Uint32N
// returns a uniform value in [0, n); n is always at least 1.
type RandomSource interface {
	Uint32N(n uint32) uint32
}

// ---------------------------------------------------------------------------
// xorshift64 RNG
// ---------------------------------------------------------------------------

// XorShift is a small deterministic RandomSource. It is not safe for
// concurrent use; each game owns its own instance.
type XorShift struct {
	state uint64
}

// NewXorShift seeds a generator. Seed 0 is corrected to 1 since xorshift
// cannot leave the zero state.
func NewXorShift(seed uint64) *XorShift {
	if seed == 0 {
		seed = 1
	}
	return &XorShift{state: seed}
}

func (x *XorShift) next() uint64 {
	s := x.state
	s ^= s << 13
	s ^= s >> 7
	s ^= s << 17
	x.state = s
	return s
}

// Uint32N returns a random number in [0, n).
func (x *XorShift) Uint32N(n uint32) uint32 {
	if n <= 1 {
		return 0
	}
	return uint32(x.next() % uint64(n))
}
