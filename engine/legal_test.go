package engine

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestMaxTake(t *testing.T) {
	tests := []struct {
		max, remaining, want uint32
	}{
		{3, 15, 3},
		{3, 2, 2},
		{5, 5, 5},
		{1, 1, 1},
		{4, 0, 0},
	}
	for _, tt := range tests {
		g := GameState{MaxPebblesPerTurn: tt.max, PebblesRemaining: tt.remaining}
		if got := g.MaxTake(); got != tt.want {
			t.Errorf("MaxTake(max=%d, remaining=%d) = %d, want %d", tt.max, tt.remaining, got, tt.want)
		}
	}
}

func TestValidateTurn(t *testing.T) {
	g := newUserFirstGame(t, Easy, 10, 4)

	for n := uint32(1); n <= 4; n++ {
		if err := g.ValidateTurn(n); err != nil {
			t.Errorf("ValidateTurn(%d) = %v, want nil", n, err)
		}
	}
	for _, n := range []uint32{0, 5, 100} {
		if err := g.ValidateTurn(n); !errors.Is(err, ErrTurnOutOfRange) {
			t.Errorf("ValidateTurn(%d) = %v, want ErrTurnOutOfRange", n, err)
		}
	}

	g.GiveUp()
	if err := g.ValidateTurn(1); !errors.Is(err, ErrGameOver) {
		t.Errorf("ValidateTurn on terminal game = %v, want ErrGameOver", err)
	}
}

func TestLegalMoves(t *testing.T) {
	g := newUserFirstGame(t, Easy, 10, 4)
	if got, want := g.LegalMoves(), []uint32{1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("LegalMoves = %v, want %v", got, want)
	}

	g.PebblesRemaining = 2
	if got, want := g.LegalMoves(), []uint32{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("LegalMoves = %v, want %v", got, want)
	}

	g.GiveUp()
	if got := g.LegalMoves(); got != nil {
		t.Errorf("LegalMoves on terminal game = %v, want nil", got)
	}
}

func TestLegalRange(t *testing.T) {
	g := newUserFirstGame(t, Easy, 10, 4)
	if lo, hi, ok := g.LegalRange(); !ok || lo != 1 || hi != 4 {
		t.Errorf("LegalRange = (%d, %d, %v), want (1, 4, true)", lo, hi, ok)
	}

	g.PebblesRemaining = 2
	if lo, hi, ok := g.LegalRange(); !ok || lo != 1 || hi != 2 {
		t.Errorf("LegalRange = (%d, %d, %v), want (1, 2, true)", lo, hi, ok)
	}

	g.GiveUp()
	if _, _, ok := g.LegalRange(); ok {
		t.Error("LegalRange on terminal game reported ok")
	}
}

func TestLegalRangeHugeBoundDoesNotAllocate(t *testing.T) {
	g := GameState{MaxPebblesPerTurn: math.MaxUint32, PebblesRemaining: math.MaxUint32}
	allocs := testing.AllocsPerRun(10, func() {
		if _, hi, ok := g.LegalRange(); !ok || hi != math.MaxUint32 {
			t.Fatalf("LegalRange hi = %d, ok = %v", hi, ok)
		}
	})
	if allocs != 0 {
		t.Errorf("LegalRange allocated %.0f times, want 0", allocs)
	}
}
