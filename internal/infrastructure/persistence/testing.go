//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestKeySize512  = 512
	TestKeySize1024 = 1024
	TestKeySize2048 = 2048
)

// TestContext holds test database and repositories
type TestContext struct {
	DB          *gorm.DB
	KeyPairRepo keys.KeyPairRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	logger := testutil.SetupTestLogger(t)

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName, logger)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	keyPairRepo, err := NewGormKeyPairRepository(db, logger)
	require.NoError(t, err, "Failed to create key pair repository")

	return &TestContext{
		DB:          db,
		KeyPairRepo: keyPairRepo,
	}
}

// CreateTestKeyPair creates a test key pair entity with default values
func CreateTestKeyPair(t *testing.T, userID string) *keys.KeyPairMeta {
	t.Helper()

	return CreateTestKeyPairWithOptions(t, userID, TestKeySize512, time.Now())
}

// CreateTestKeyPairWithOptions creates a test key pair entity with custom options.
// The key material is a fixed toy key; only the metadata varies.
func CreateTestKeyPairWithOptions(t *testing.T, userID string, bits uint32, created time.Time) *keys.KeyPairMeta {
	t.Helper()

	return &keys.KeyPairMeta{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Algorithm:          cryptoalg.AlgorithmRSA,
		Bits:               bits,
		ModulusHex:         "ca1",
		PublicExponentHex:  "11",
		PrivateExponentHex: "ac1",
		DateTimeCreated:    created,
	}
}
