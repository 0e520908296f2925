//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPairPostgresRepository_CreateGetDelete(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	keyPair := CreateTestKeyPair(t, uuid.NewString())
	require.NoError(t, ctx.KeyPairRepo.Create(context.Background(), keyPair))

	fetched, err := ctx.KeyPairRepo.GetByID(context.Background(), keyPair.ID)
	require.NoError(t, err)
	assert.Equal(t, keyPair.ModulusHex, fetched.ModulusHex)

	require.NoError(t, ctx.KeyPairRepo.DeleteByID(context.Background(), keyPair.ID))

	_, err = ctx.KeyPairRepo.GetByID(context.Background(), keyPair.ID)
	assert.ErrorIs(t, err, keys.ErrKeyPairNotFound)
}

func TestKeyPairPostgresRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	userID := uuid.NewString()
	require.NoError(t, ctx.KeyPairRepo.Create(context.Background(), CreateTestKeyPair(t, userID)))
	require.NoError(t, ctx.KeyPairRepo.Create(context.Background(), CreateTestKeyPair(t, userID)))

	listed, err := ctx.KeyPairRepo.List(context.Background(), &keys.KeyPairQuery{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
