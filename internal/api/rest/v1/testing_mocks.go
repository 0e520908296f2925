//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"

	"github.com/stretchr/testify/mock"
)

// MockKeyPairGenerationService is a mock implementation of KeyPairGenerationService
type MockKeyPairGenerationService struct {
	mock.Mock
}

func (m *MockKeyPairGenerationService) Generate(ctx context.Context, userID string, bits uint32) (*keys.KeyPairMeta, error) {
	args := m.Called(ctx, userID, bits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyPairMeta), args.Error(1)
}

// MockKeyPairMetadataService is a mock implementation of KeyPairMetadataService
type MockKeyPairMetadataService struct {
	mock.Mock
}

func (m *MockKeyPairMetadataService) List(ctx context.Context, query *keys.KeyPairQuery) ([]*keys.KeyPairMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.KeyPairMeta), args.Error(1)
}

func (m *MockKeyPairMetadataService) GetByID(ctx context.Context, keyPairID string) (*keys.KeyPairMeta, error) {
	args := m.Called(ctx, keyPairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyPairMeta), args.Error(1)
}

func (m *MockKeyPairMetadataService) DeleteByID(ctx context.Context, keyPairID string) error {
	args := m.Called(ctx, keyPairID)
	return args.Error(0)
}

// MockCipherService is a mock implementation of CipherService
type MockCipherService struct {
	mock.Mock
}

func (m *MockCipherService) EncryptText(ctx context.Context, keyPairID string, plaintext []byte) (string, error) {
	args := m.Called(ctx, keyPairID, plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockCipherService) DecryptText(ctx context.Context, keyPairID string, ciphertext string) ([]byte, error) {
	args := m.Called(ctx, keyPairID, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
