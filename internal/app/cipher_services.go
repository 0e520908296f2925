package app

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
)

// cipherService implements the CipherService interface on top of stored key pairs
type cipherService struct {
	keyPairRepo  keys.KeyPairRepository
	rsaProcessor cryptoalg.RSAProcessor
	logger       logger.Logger
}

// NewCipherService creates a new cipherService instance
func NewCipherService(keyPairRepo keys.KeyPairRepository, rsaProcessor cryptoalg.RSAProcessor, logger logger.Logger) (keys.CipherService, error) {
	return &cipherService{
		keyPairRepo:  keyPairRepo,
		rsaProcessor: rsaProcessor,
		logger:       logger,
	}, nil
}

// EncryptText encrypts plaintext with the public key of the key pair and returns hex block lines.
func (s *cipherService) EncryptText(ctx context.Context, keyPairID string, plaintext []byte) (string, error) {
	keyPairMeta, err := s.keyPairRepo.GetByID(ctx, keyPairID)
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}

	publicKey, err := keyPairMeta.PublicKey()
	if err != nil {
		return "", fmt.Errorf("failed to load public key of %s: %w", keyPairID, err)
	}

	blocks, err := s.rsaProcessor.EncryptText(plaintext, publicKey)
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}

	return cryptography.FormatBlocks(blocks), nil
}

// DecryptText parses hex block lines and decrypts them with the private key of the key pair.
func (s *cipherService) DecryptText(ctx context.Context, keyPairID string, ciphertext string) ([]byte, error) {
	keyPairMeta, err := s.keyPairRepo.GetByID(ctx, keyPairID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	blocks, err := cryptography.ParseBlocks(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("invalid ciphertext: %w", err)
	}

	privateKey, err := keyPairMeta.PrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to load private key of %s: %w", keyPairID, err)
	}

	plaintext, err := s.rsaProcessor.DecryptText(blocks, privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return plaintext, nil
}
