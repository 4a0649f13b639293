package shortener

import (
	"math/rand"
	"strings"
	"time"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// TokenGenerator draws random alphanumeric tokens with a length picked
// uniformly in [minLen, maxLen]. Collisions against stored tokens are the
// caller's problem: retry on a uniqueness violation.
type TokenGenerator struct {
	minLen int
	maxLen int
	rand   *rand.Rand
}

func NewTokenGenerator(minLen, maxLen int, src rand.Source) *TokenGenerator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &TokenGenerator{
		minLen: minLen,
		maxLen: maxLen,
		rand:   rand.New(src),
	}
}

func (g *TokenGenerator) Generate() string {
	length := g.minLen + g.rand.Intn(g.maxLen-g.minLen+1)

	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(tokenAlphabet[g.rand.Intn(len(tokenAlphabet))])
	}
	return b.String()
}
