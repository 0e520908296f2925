package keys

import (
	"context"
)

// KeyPairGenerationService defines methods for generating and storing key pairs.
type KeyPairGenerationService interface {
	// Generate generates a key pair of the given modulus size for userID and stores it.
	// It returns the stored KeyPairMeta and any error encountered during generation or storage.
	Generate(ctx context.Context, userID string, bits uint32) (*KeyPairMeta, error)
}

// KeyPairMetadataService defines methods for looking up and deleting stored key pairs.
type KeyPairMetadataService interface {
	// List retrieves all key pairs considering a query filter when set.
	List(ctx context.Context, query *KeyPairQuery) ([]*KeyPairMeta, error)

	// GetByID retrieves a key pair by its unique ID.
	// It returns an error wrapping ErrKeyPairNotFound when the ID is unknown.
	GetByID(ctx context.Context, keyPairID string) (*KeyPairMeta, error)

	// DeleteByID deletes a key pair by ID.
	DeleteByID(ctx context.Context, keyPairID string) error
}

// CipherService defines methods for encrypting and decrypting text with a stored key pair.
// Ciphertext is exchanged as newline-delimited lowercase hexadecimal blocks.
type CipherService interface {
	// EncryptText encrypts plaintext with the public key of the key pair.
	EncryptText(ctx context.Context, keyPairID string, plaintext []byte) (string, error)

	// DecryptText decrypts hex block ciphertext with the private key of the key pair.
	DecryptText(ctx context.Context, keyPairID string, ciphertext string) ([]byte, error)
}

// KeyPairRepository defines the interface for KeyPair-related operations
type KeyPairRepository interface {
	// Create adds a new KeyPair to the database
	Create(ctx context.Context, keyPair *KeyPairMeta) error
	// List lists KeyPairs in the database with optional filter
	List(ctx context.Context, query *KeyPairQuery) ([]*KeyPairMeta, error)
	// GetByID retrieves a KeyPair from the database by ID
	GetByID(ctx context.Context, keyPairID string) (*KeyPairMeta, error)
	// DeleteByID deletes a KeyPair in the database by ID
	DeleteByID(ctx context.Context, keyPairID string) error
}
