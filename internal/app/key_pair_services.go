package app

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
)

// keyPairGenerationService implements the KeyPairGenerationService interface for generating and storing key pairs
type keyPairGenerationService struct {
	keyPairRepo  keys.KeyPairRepository
	rsaProcessor cryptoalg.RSAProcessor
	logger       logger.Logger
}

// NewKeyPairGenerationService creates a new keyPairGenerationService instance
func NewKeyPairGenerationService(keyPairRepo keys.KeyPairRepository, rsaProcessor cryptoalg.RSAProcessor, logger logger.Logger) (keys.KeyPairGenerationService, error) {
	return &keyPairGenerationService{
		keyPairRepo:  keyPairRepo,
		rsaProcessor: rsaProcessor,
		logger:       logger,
	}, nil
}

// Generate generates a key pair for userID and stores it.
func (s *keyPairGenerationService) Generate(ctx context.Context, userID string, bits uint32) (*keys.KeyPairMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keyPair, err := s.rsaProcessor.GenerateKeys(uint(bits))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	keyPairMeta, err := keys.NewKeyPairMeta(userID, bits, keyPair)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if err := s.keyPairRepo.Create(ctx, keyPairMeta); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.logger.Info(fmt.Sprintf("Generated key pair %s with a %d-bit modulus", keyPairMeta.ID, keyPairMeta.ModulusBits()))
	return keyPairMeta, nil
}

// keyPairMetadataService implements the KeyPairMetadataService interface to manage stored key pairs.
type keyPairMetadataService struct {
	keyPairRepo keys.KeyPairRepository
	logger      logger.Logger
}

// NewKeyPairMetadataService creates a new keyPairMetadataService instance
func NewKeyPairMetadataService(keyPairRepo keys.KeyPairRepository, logger logger.Logger) (keys.KeyPairMetadataService, error) {
	return &keyPairMetadataService{
		keyPairRepo: keyPairRepo,
		logger:      logger,
	}, nil
}

// List retrieves all key pairs based on a query.
func (s *keyPairMetadataService) List(ctx context.Context, query *keys.KeyPairQuery) ([]*keys.KeyPairMeta, error) {
	keyPairMetas, err := s.keyPairRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return keyPairMetas, nil
}

// GetByID retrieves a key pair by its ID.
func (s *keyPairMetadataService) GetByID(ctx context.Context, keyPairID string) (*keys.KeyPairMeta, error) {
	keyPairMeta, err := s.keyPairRepo.GetByID(ctx, keyPairID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return keyPairMeta, nil
}

// DeleteByID deletes a key pair by its ID.
func (s *keyPairMetadataService) DeleteByID(ctx context.Context, keyPairID string) error {
	if err := s.keyPairRepo.DeleteByID(ctx, keyPairID); err != nil {
		return fmt.Errorf("failed to delete key pair from database: %w", err)
	}
	return nil
}
