package cryptography

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
)

// KeyPairGenerator combines two distinct probable primes into a key pair.
type KeyPairGenerator struct {
	primes      *PrimeGenerator
	maxAttempts int
	logger      logger.Logger
}

// NewKeyPairGenerator creates a KeyPairGenerator on top of a PrimeGenerator.
// maxAttempts also caps the distinct-prime redraw and the exponent search.
func NewKeyPairGenerator(primes *PrimeGenerator, maxAttempts int, logger logger.Logger) *KeyPairGenerator {
	if maxAttempts <= 0 {
		maxAttempts = cryptoalg.DefaultMaxAttempts
	}
	return &KeyPairGenerator{
		primes:      primes,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// GenerateKeys generates a key pair from two primes of bits/2 bits each.
// For even bits the modulus has bits or bits-1 bits. For odd bits the halving rounds down,
// so the modulus has bits-1 or bits-2 bits (bits = 65 gives a 63- or 64-bit n).
func (g *KeyPairGenerator) GenerateKeys(bits uint) (*cryptoalg.KeyPair, error) {
	if bits < cryptoalg.MinKeyBits {
		return nil, fmt.Errorf("%w: key bit length must be at least %d for two %d-bit primes, got %d",
			cryptoalg.ErrInvalidParameter, cryptoalg.MinKeyBits, cryptoalg.MinPrimeBits, bits)
	}
	if bits < cryptoalg.InsecureKeyBits {
		g.logger.Warn(fmt.Sprintf("Key bit length %d is too short for any security, demonstration only", bits))
	}

	primeBits := bits / 2
	if primeBits < cryptoalg.MinPrimeBits {
		primeBits = cryptoalg.MinPrimeBits
	}

	p, err := g.primes.GenerateProbablePrime(primeBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate prime p: %w", err)
	}
	q, err := g.distinctPrime(p, primeBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate prime q: %w", err)
	}

	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(new(big.Int).Sub(p, bigOne), new(big.Int).Sub(q, bigOne))

	e, err := g.publicExponent(phi)
	if err != nil {
		return nil, err
	}

	d := new(big.Int).ModInverse(e, phi)
	if d == nil || (d.Sign() == 0 && phi.Cmp(bigOne) != 0) {
		return nil, fmt.Errorf("%w: e=%s has no inverse modulo phi(n)", cryptoalg.ErrModularInverseFailure, e.String())
	}

	keyPair, err := cryptoalg.NewKeyPair(n, e, d)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble key pair: %w", err)
	}

	g.logger.Info(fmt.Sprintf("Generated %d-bit RSA key pair with e=%s", n.BitLen(), e.String()))
	return keyPair, nil
}

// distinctPrime draws primes until one differs from p.
func (g *KeyPairGenerator) distinctPrime(p *big.Int, primeBits uint) (*big.Int, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		q, err := g.primes.GenerateProbablePrime(primeBits)
		if err != nil {
			return nil, err
		}
		if q.Cmp(p) != 0 {
			return q, nil
		}
	}
	return nil, fmt.Errorf("%w: no prime distinct from p within %d draws", cryptoalg.ErrGenerationExhausted, g.maxAttempts)
}

// publicExponent prefers 65537 and otherwise scans odd candidates from 3.
func (g *KeyPairGenerator) publicExponent(phi *big.Int) (*big.Int, error) {
	e := big.NewInt(cryptoalg.DefaultPublicExponent)
	if e.Cmp(phi) < 0 && coprime(e, phi) {
		return e, nil
	}

	e.SetInt64(3)
	for attempt := 0; e.Cmp(phi) < 0; attempt++ {
		if coprime(e, phi) {
			g.logger.Debug(fmt.Sprintf("Fell back to public exponent e=%s", e.String()))
			return e, nil
		}
		if attempt >= g.maxAttempts {
			return nil, fmt.Errorf("%w: exponent search stopped after %d candidates",
				cryptoalg.ErrGenerationExhausted, g.maxAttempts)
		}
		e.Add(e, bigTwo)
	}
	return nil, fmt.Errorf("%w: every odd candidate below phi(n)=%s shares a factor with it",
		cryptoalg.ErrNoSuitableExponent, phi.String())
}

func coprime(a, b *big.Int) bool {
	return new(big.Int).GCD(nil, nil, a, b).Cmp(bigOne) == 0
}
