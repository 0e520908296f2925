package cryptoalg

import (
	"fmt"
	"math/big"
)

// PublicKey is the public half of a key pair: the modulus n and the public exponent e.
// It is immutable: constructors and accessors copy the underlying integers.
type PublicKey struct {
	n *big.Int
	e *big.Int
}

// PrivateKey is the private half of a key pair: the modulus n and the private exponent d.
// It is immutable: constructors and accessors copy the underlying integers.
type PrivateKey struct {
	n *big.Int
	d *big.Int
}

// KeyPair owns one public and one private key sharing the same modulus.
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
}

// NewPublicKey creates a public key from copies of n and e.
func NewPublicKey(n, e *big.Int) (*PublicKey, error) {
	if err := checkComponents(n, e); err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}
	return &PublicKey{n: new(big.Int).Set(n), e: new(big.Int).Set(e)}, nil
}

// NewPrivateKey creates a private key from copies of n and d.
func NewPrivateKey(n, d *big.Int) (*PrivateKey, error) {
	if err := checkComponents(n, d); err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}
	return &PrivateKey{n: new(big.Int).Set(n), d: new(big.Int).Set(d)}, nil
}

// NewKeyPair creates a key pair from the modulus and both exponents.
func NewKeyPair(n, e, d *big.Int) (*KeyPair, error) {
	pub, err := NewPublicKey(n, e)
	if err != nil {
		return nil, err
	}
	priv, err := NewPrivateKey(n, d)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Public: pub, Private: priv}, nil
}

func checkComponents(n, exp *big.Int) error {
	if n == nil || exp == nil {
		return fmt.Errorf("%w: missing key component", ErrInvalidParameter)
	}
	if n.Sign() <= 0 || exp.Sign() <= 0 {
		return fmt.Errorf("%w: key components must be positive", ErrInvalidParameter)
	}
	return nil
}

// N returns a copy of the modulus.
func (k *PublicKey) N() *big.Int { return new(big.Int).Set(k.n) }

// E returns a copy of the public exponent.
func (k *PublicKey) E() *big.Int { return new(big.Int).Set(k.e) }

// ByteLength returns the approximate byte length of the modulus.
func (k *PublicKey) ByteLength() int { return ApproximateByteLength(k.n) }

// Validate checks that the key is usable for encryption.
func (k *PublicKey) Validate() error {
	if k == nil {
		return fmt.Errorf("%w: public key cannot be nil", ErrInvalidParameter)
	}
	return checkComponents(k.n, k.e)
}

// N returns a copy of the modulus.
func (k *PrivateKey) N() *big.Int { return new(big.Int).Set(k.n) }

// D returns a copy of the private exponent.
func (k *PrivateKey) D() *big.Int { return new(big.Int).Set(k.d) }

// ByteLength returns the approximate byte length of the modulus.
func (k *PrivateKey) ByteLength() int { return ApproximateByteLength(k.n) }

// Validate checks that the key is usable for decryption.
func (k *PrivateKey) Validate() error {
	if k == nil {
		return fmt.Errorf("%w: private key cannot be nil", ErrInvalidParameter)
	}
	return checkComponents(k.n, k.d)
}

// ApproximateByteLength returns (msb(n)+8)/8 where msb is the 0-based index of the top bit,
// i.e. the byte width of n, and 1 for n = 0.
// The chunking block size is always this value minus one, so every chunk stays below n.
func ApproximateByteLength(n *big.Int) int {
	if n == nil || n.Sign() == 0 {
		return 1
	}
	return (n.BitLen() + 7) / 8
}
