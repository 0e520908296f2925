//go:build integration
// +build integration

package app

import (
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/persistence"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	KeyPairGenerationService keys.KeyPairGenerationService
	KeyPairMetadataService   keys.KeyPairMetadataService
	CipherService            keys.CipherService

	// Infrastructure
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests.
// Key generation draws from a seeded source so runs are reproducible.
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)

	dbContext := persistence.SetupTestDB(t, dbType)

	rsaProcessor, err := cryptography.NewRSAProcessor(logger, cryptography.WithRandom(testutil.SeededRandom(1)))
	require.NoError(t, err, "Failed to create RSA processor")

	keyPairGenerationService, err := NewKeyPairGenerationService(dbContext.KeyPairRepo, rsaProcessor, logger)
	require.NoError(t, err, "Failed to create KeyPairGenerationService")

	keyPairMetadataService, err := NewKeyPairMetadataService(dbContext.KeyPairRepo, logger)
	require.NoError(t, err, "Failed to create KeyPairMetadataService")

	cipherService, err := NewCipherService(dbContext.KeyPairRepo, rsaProcessor, logger)
	require.NoError(t, err, "Failed to create CipherService")

	return &TestServices{
		KeyPairGenerationService: keyPairGenerationService,
		KeyPairMetadataService:   keyPairMetadataService,
		CipherService:            cipherService,
		DBContext:                dbContext,
	}
}
