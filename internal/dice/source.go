// Package dice provides the randomness abstraction used by combat and the bot.
package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Source is the randomness provider for every roll in a match.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// cryptoSource implements Source using crypto/rand.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Panics if n <= 0 or if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// NewSeededSource returns a reproducible Source. A seed of 0 is treated as 1.
func NewSeededSource(seed int64) Source {
	if seed == 0 {
		seed = 1
	}
	return mrand.New(mrand.NewSource(seed))
}

// NewSource returns a seeded Source when seed is non-zero and a crypto
// Source otherwise.
func NewSource(seed int64) Source {
	if seed == 0 {
		return NewCryptoSource()
	}
	return NewSeededSource(seed)
}
