package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	var g Generator = Crypto{}

	found := make(map[int]bool)
	// every value shows up in 500 draws unless something is broken
	for i := 0; i < 500; i++ {
		n := g.Intn(3)
		assert.True(t, n >= 0 && n < 3)
		found[n] = true
	}

	assert.Equal(t, 3, len(found))
}
