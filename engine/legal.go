package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrGameOver rejects any move once a winner is set.
	ErrGameOver = errors.New("game is already over")
	// ErrTurnOutOfRange rejects a move outside [1, MaxTake()].
	ErrTurnOutOfRange = errors.New("pebbles out of range")
)

// MaxTake returns the largest legal move: min(max_pebbles_per_turn, pebbles_remaining).
func (g *GameState) MaxTake() uint32 {
	return min(g.MaxPebblesPerTurn, g.PebblesRemaining)
}

// ValidateTurn reports why Turn(n) would be rejected, or nil if it is legal.
func (g *GameState) ValidateTurn(n uint32) error {
	if g.IsTerminal() {
		return ErrGameOver
	}
	hi := g.MaxTake()
	if n < 1 || n > hi {
		return fmt.Errorf("%w: got %d, want 1..%d", ErrTurnOutOfRange, n, hi)
	}
	return nil
}

// LegalRange returns the bounds of the legal moves, 1..MaxTake(). ok is
// false once the game is over.
func (g *GameState) LegalRange() (lo, hi uint32, ok bool) {
	if g.IsTerminal() || g.PebblesRemaining == 0 {
		return 0, 0, false
	}
	return 1, g.MaxTake(), true
}

// LegalMoves returns every legal move in ascending order. It allocates
// MaxTake() entries; callers facing client-sized configs use LegalRange.
func (g *GameState) LegalMoves() []uint32 {
	if g.IsTerminal() {
		return nil
	}
	hi := g.MaxTake()
	moves := make([]uint32, 0, hi)
	for n := uint32(1); n <= hi; n++ {
		moves = append(moves, n)
	}
	return moves
}
