package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "two crypto seeds should differ")
}

func TestSourceFactoryReproducible(t *testing.T) {
	first, second := SourceFactory(42), SourceFactory(42)

	for game := 0; game < 3; game++ {
		a, err := first()
		require.NoError(t, err)
		b, err := second()
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			assert.Equal(t, a.Uint32N(100), b.Uint32N(100), "game %d draw %d", game, i)
		}
	}
}

func TestSourceFactoryRandomSeed(t *testing.T) {
	next := SourceFactory(0)
	src, err := next()
	require.NoError(t, err)
	assert.Less(t, src.Uint32N(6), uint32(6))
}
