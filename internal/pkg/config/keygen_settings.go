package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Key generation defaults
const (
	DefaultKeyBits     = 512
	DefaultMaxAttempts = 1_000_000
)

// KeyGenerationSettings controls the RSA engine: default modulus size,
// the iteration cap of every sampling loop and the legacy truncation path of the block codec.
type KeyGenerationSettings struct {
	Bits            uint `mapstructure:"bits" validate:"gte=6,lte=8192"`
	MaxAttempts     int  `mapstructure:"max_attempts" validate:"gte=1"`
	LossyTruncation bool `mapstructure:"lossy_truncation"`
}

// Validate checks that all fields in KeyGenerationSettings are valid
func (s *KeyGenerationSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for KeyGenerationSettings: %w", err)
	}
	return nil
}
