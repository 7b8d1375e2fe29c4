// Package rng provides the random numbers used for names the client makes up
package rng

import (
	"crypto/rand"
	"math/big"
)

// Generator returns random numbers
type Generator interface {
	// Intn returns a random number in [0, n)
	Intn(n int) int
}

// Crypto reads from crypto/rand
type Crypto struct{}

// Intn implements Generator
func (Crypto) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}
