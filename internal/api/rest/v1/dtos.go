package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents an error message returned by the API
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse represents an informational message returned by the API
type InfoResponse struct {
	Message string `json:"message"`
}

// GenerateKeyPairRequest is the body of a key pair generation request
type GenerateKeyPairRequest struct {
	Bits uint32 `json:"bits" validate:"required,keysize"`
}

// Validate for validating GenerateKeyPairRequest struct
func (r *GenerateKeyPairRequest) Validate() error {
	return validateStruct(r)
}

// EncryptTextRequest is the body of a text encryption request.
// Plaintext carries UTF-8 text; binary input goes in PlaintextBase64 instead. At most one is set.
type EncryptTextRequest struct {
	Plaintext       string `json:"plaintext"`
	PlaintextBase64 []byte `json:"plaintext_base64"`
}

// Bytes returns the plaintext to encrypt.
func (r *EncryptTextRequest) Bytes() ([]byte, error) {
	if r.Plaintext != "" && len(r.PlaintextBase64) > 0 {
		return nil, fmt.Errorf("set either plaintext or plaintext_base64, not both")
	}
	if len(r.PlaintextBase64) > 0 {
		return r.PlaintextBase64, nil
	}
	return []byte(r.Plaintext), nil
}

// EncryptTextResponse carries ciphertext as newline-delimited hexadecimal blocks
type EncryptTextResponse struct {
	KeyPairID  string `json:"key_pair_id"`
	Ciphertext string `json:"ciphertext"`
}

// DecryptTextRequest is the body of a text decryption request
type DecryptTextRequest struct {
	Ciphertext string `json:"ciphertext" validate:"required"`
}

// Validate for validating DecryptTextRequest struct
func (r *DecryptTextRequest) Validate() error {
	return validateStruct(r)
}

// DecryptTextResponse carries the recovered plaintext.
// Plaintext is only exact for UTF-8 text: JSON replaces invalid UTF-8 with U+FFFD.
// PlaintextBase64 always holds the exact decrypted bytes.
type DecryptTextResponse struct {
	KeyPairID       string `json:"key_pair_id"`
	Plaintext       string `json:"plaintext"`
	PlaintextBase64 []byte `json:"plaintext_base64"`
}

// KeyPairMetaResponse exposes a stored key pair without its private exponent
type KeyPairMetaResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Algorithm         string    `json:"algorithm"`
	Bits              uint32    `json:"bits"`
	ModulusBits       int       `json:"modulus_bits"`
	ModulusHex        string    `json:"modulus"`
	PublicExponentHex string    `json:"public_exponent"`
	DateTimeCreated   time.Time `json:"date_time_created"`
}

// NewKeyPairMetaResponse maps a stored key pair to its public representation
func NewKeyPairMetaResponse(keyPairMeta *keys.KeyPairMeta) KeyPairMetaResponse {
	return KeyPairMetaResponse{
		ID:                keyPairMeta.ID,
		UserID:            keyPairMeta.UserID,
		Algorithm:         keyPairMeta.Algorithm,
		Bits:              keyPairMeta.Bits,
		ModulusBits:       keyPairMeta.ModulusBits(),
		ModulusHex:        keyPairMeta.ModulusHex,
		PublicExponentHex: keyPairMeta.PublicExponentHex,
		DateTimeCreated:   keyPairMeta.DateTimeCreated,
	}
}

func validateStruct(s interface{}) error {
	validate := validators.New()

	err := validate.Struct(s)
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
