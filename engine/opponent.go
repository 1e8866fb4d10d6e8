package engine

// ChooseMove picks the program's next move for the current state. The result
// is always in [1, MaxTake()]. It must not be called on a terminal state.
func ChooseMove(g *GameState, rng RandomSource) uint32 {
	hi := g.MaxTake()
	if hi == 0 {
		return 0
	}

	var m uint32
	switch g.Difficulty {
	case Easy:
		m = randomMove(hi, rng)
	case Hard:
		m = optimalMove(g.PebblesRemaining, g.MaxPebblesPerTurn)
		if m == 0 {
			// Losing residue: any legal move loses against perfect play.
			m = randomMove(hi, rng)
		}
	default:
		m = randomMove(hi, rng)
	}

	return clampMove(m, hi)
}

// optimalMove returns remaining mod (k+1), the move that leaves the opponent
// on a multiple of k+1. Zero means no forcing move exists. k+1 is computed
// in 64 bits so k = MaxUint32 does not wrap to zero.
func optimalMove(remaining, k uint32) uint32 {
	return uint32(uint64(remaining) % (uint64(k) + 1))
}

// IsLosingResidue reports whether the player to move on remaining pebbles
// loses against optimal play with move bound k.
func IsLosingResidue(remaining, k uint32) bool {
	return optimalMove(remaining, k) == 0
}

// randomMove returns a uniform draw from [1, hi].
func randomMove(hi uint32, rng RandomSource) uint32 {
	return rng.Uint32N(hi) + 1
}

func clampMove(m, hi uint32) uint32 {
	if m < 1 {
		return 1
	}
	if m > hi {
		return hi
	}
	return m
}
