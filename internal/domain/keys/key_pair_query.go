package keys

import (
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// KeyPairQuery represents the filter, pagination and sorting options of a key pair listing
type KeyPairQuery struct {
	UserID          string    `validate:"omitempty,uuid4"`
	Bits            uint32    `validate:"omitempty,keysize"`
	DateTimeCreated time.Time `validate:"omitempty"`

	Limit  int `validate:"omitempty,gt=0"`
	Offset int `validate:"omitempty,gte=0"`

	SortBy    string `validate:"omitempty,oneof=date_time_created bits"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewKeyPairQuery creates a KeyPairQuery with default values.
func NewKeyPairQuery() *KeyPairQuery {
	return &KeyPairQuery{
		Limit:     10,
		Offset:    0,
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating KeyPairQuery struct
func (k *KeyPairQuery) Validate() error {
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
