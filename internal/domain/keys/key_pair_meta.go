package keys

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// KeyPairMeta entity
type KeyPairMeta struct {
	ID                 string    `validate:"required,uuid4"`
	UserID             string    `validate:"required,uuid4"`
	Algorithm          string    `validate:"required,eq=RSA"`
	Bits               uint32    `validate:"required,keysize"`
	ModulusHex         string    `validate:"required,hexadecimal"`
	PublicExponentHex  string    `validate:"required,hexadecimal"`
	PrivateExponentHex string    `validate:"required,hexadecimal"`
	DateTimeCreated    time.Time `validate:"required"`
}

// NewKeyPairMeta wraps a freshly generated key pair into a new entity owned by userID.
// bits is the requested modulus size, the actual modulus may be one bit shorter.
func NewKeyPairMeta(userID string, bits uint32, keyPair *cryptoalg.KeyPair) (*KeyPairMeta, error) {
	if keyPair == nil || keyPair.Public.Validate() != nil || keyPair.Private.Validate() != nil {
		return nil, fmt.Errorf("%w: incomplete key pair", cryptoalg.ErrInvalidParameter)
	}

	return &KeyPairMeta{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Algorithm:          cryptoalg.AlgorithmRSA,
		Bits:               bits,
		ModulusHex:         keyPair.Public.N().Text(16),
		PublicExponentHex:  keyPair.Public.E().Text(16),
		PrivateExponentHex: keyPair.Private.D().Text(16),
		DateTimeCreated:    time.Now().UTC(),
	}, nil
}

// Validate for validating KeyPairMeta struct
func (k *KeyPairMeta) Validate() error {
	validate := validators.New()

	err := validate.Struct(k)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// PublicKey rebuilds the public half of the stored key pair.
func (k *KeyPairMeta) PublicKey() (*cryptoalg.PublicKey, error) {
	n, err := parseHex("modulus", k.ModulusHex)
	if err != nil {
		return nil, err
	}
	e, err := parseHex("public exponent", k.PublicExponentHex)
	if err != nil {
		return nil, err
	}
	return cryptoalg.NewPublicKey(n, e)
}

// PrivateKey rebuilds the private half of the stored key pair.
func (k *KeyPairMeta) PrivateKey() (*cryptoalg.PrivateKey, error) {
	n, err := parseHex("modulus", k.ModulusHex)
	if err != nil {
		return nil, err
	}
	d, err := parseHex("private exponent", k.PrivateExponentHex)
	if err != nil {
		return nil, err
	}
	return cryptoalg.NewPrivateKey(n, d)
}

// ModulusBits returns the actual bit length of the stored modulus.
func (k *KeyPairMeta) ModulusBits() int {
	n, err := parseHex("modulus", k.ModulusHex)
	if err != nil {
		return 0
	}
	return n.BitLen()
}

func parseHex(name, value string) (*big.Int, error) {
	parsed, ok := new(big.Int).SetString(value, 16)
	if !ok {
		return nil, fmt.Errorf("%w: stored %s is not hexadecimal", cryptoalg.ErrInvalidParameter, name)
	}
	return parsed, nil
}
