package cryptography

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
)

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// PrimeGenerator samples random odd integers of a fixed bit width and keeps the first probable prime.
type PrimeGenerator struct {
	random      cryptoalg.RandomSource
	maxAttempts int
	logger      logger.Logger
}

// NewPrimeGenerator creates a PrimeGenerator drawing from random.
// maxAttempts bounds the number of candidates drawn per prime.
func NewPrimeGenerator(random cryptoalg.RandomSource, maxAttempts int, logger logger.Logger) *PrimeGenerator {
	if maxAttempts <= 0 {
		maxAttempts = cryptoalg.DefaultMaxAttempts
	}
	return &PrimeGenerator{
		random:      random,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// GenerateProbablePrime returns a probable prime in [2^(bitLength-1), 2^bitLength - 1].
// It advances the state of the generator's random source.
func (g *PrimeGenerator) GenerateProbablePrime(bitLength uint) (*big.Int, error) {
	if bitLength < cryptoalg.MinPrimeBits {
		return nil, fmt.Errorf("%w: prime bit length must be at least %d, got %d",
			cryptoalg.ErrInvalidParameter, cryptoalg.MinPrimeBits, bitLength)
	}
	if bitLength < cryptoalg.InsecurePrimeBits {
		g.logger.Warn(fmt.Sprintf("Prime bit length %d is very short, use it for demonstrations only", bitLength))
	}

	lower := new(big.Int).Lsh(bigOne, bitLength-1)
	upper := new(big.Int).Sub(new(big.Int).Lsh(bigOne, bitLength), bigOne)
	if lower.Cmp(bigTwo) < 0 {
		lower.Set(bigTwo)
	}
	if upper.Cmp(lower) <= 0 {
		upper.Add(lower, bigOne)
	}

	// rand.Int samples [0, span), so the interval is inclusive of upper
	span := new(big.Int).Sub(upper, lower)
	span.Add(span, bigOne)

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		candidate, err := rand.Int(g.random, span)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read random source: %w", cryptoalg.ErrIO, err)
		}
		candidate.Add(candidate, lower)
		candidate.SetBit(candidate, 0, 1)

		if candidate.Cmp(upper) > 0 || candidate.Cmp(bigThree) < 0 {
			continue
		}
		if candidate.ProbablyPrime(cryptoalg.MillerRabinRounds) {
			g.logger.Debug(fmt.Sprintf("Found %d-bit probable prime after %d candidates", bitLength, attempt))
			return candidate, nil
		}
	}

	return nil, fmt.Errorf("%w: no %d-bit prime within %d candidates",
		cryptoalg.ErrGenerationExhausted, bitLength, g.maxAttempts)
}
