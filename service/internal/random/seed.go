// Package random provides seed generation for per-game random sources.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"sync/atomic"

	engine "github.com/JohnLee1360/JLpebbles-gear-academy/engine"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// SourceFactory returns a constructor of independent per-game sources.
// A non-zero base seed makes the sequence of games reproducible: the n-th
// game gets base+n. A zero base seeds every game from crypto/rand.
// The returned function is safe for concurrent use.
func SourceFactory(base uint64) func() (engine.RandomSource, error) {
	var n atomic.Uint64
	return func() (engine.RandomSource, error) {
		if base != 0 {
			return engine.NewXorShift(base + n.Add(1)), nil
		}
		seed, err := NewSeed()
		if err != nil {
			return nil, err
		}
		return engine.NewXorShift(seed), nil
	}
}
