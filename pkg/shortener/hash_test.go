package shortener

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLengthWithinBounds(t *testing.T) {
	g := NewTokenGenerator(6, 10, rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		token := g.Generate()
		assert.GreaterOrEqual(t, len(token), 6)
		assert.LessOrEqual(t, len(token), 10)
	}
}

func TestGenerateAlphanumericOnly(t *testing.T) {
	g := NewTokenGenerator(6, 10, rand.NewSource(2))

	for i := 0; i < 1000; i++ {
		token := g.Generate()
		for _, c := range token {
			assert.True(t, strings.ContainsRune(tokenAlphabet, c), "unexpected character %q in token %q", c, token)
		}
	}
}

func TestGenerateDeterministicWithFixedSource(t *testing.T) {
	first := NewTokenGenerator(6, 10, rand.NewSource(42))
	second := NewTokenGenerator(6, 10, rand.NewSource(42))

	for i := 0; i < 100; i++ {
		require.Equal(t, first.Generate(), second.Generate())
	}
}

func TestGenerateFixedLength(t *testing.T) {
	g := NewTokenGenerator(8, 8, rand.NewSource(3))

	for i := 0; i < 100; i++ {
		assert.Len(t, g.Generate(), 8)
	}
}

func TestNewTokenGeneratorDefaultsSource(t *testing.T) {
	g := NewTokenGenerator(6, 10, nil)
	require.NotNil(t, g)
	assert.NotEmpty(t, g.Generate())
}
