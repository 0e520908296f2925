package validators

import (
	"github.com/go-playground/validator/v10"
)

// MaxKeyBits is the largest modulus size the vault generates
const MaxKeyBits = 8192

// minKeyBits mirrors the smallest modulus able to hold two 3-bit primes
const minKeyBits = 6

// KeySizeValidation validates an RSA modulus bit length for the textbook engine.
// Sizes below 128 bits are accepted; key generation only warns about them.
func KeySizeValidation(fl validator.FieldLevel) bool {
	bits := fl.Field().Uint()
	return bits >= minKeyBits && bits <= MaxKeyBits
}

// New returns a validator with the "keysize" tag registered.
func New() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("keysize", KeySizeValidation)
	return validate
}
