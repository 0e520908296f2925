package testutil

import (
	"math/rand"
)

// SeededRandom returns a deterministic random source for key generation tests.
// It must never be used outside of tests.
func SeededRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic test source
}
