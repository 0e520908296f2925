//go:build integration
// +build integration

package app

import (
	"context"
	"strings"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipherService_RoundTrip(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	keyPairMeta, err := services.KeyPairGenerationService.Generate(ctx, uuid.NewString(), 512)
	require.NoError(t, err)

	for _, plaintext := range []string{"HELLO", strings.Repeat("Textbook RSA is deterministic. ", 9)} {
		ciphertext, err := services.CipherService.EncryptText(ctx, keyPairMeta.ID, []byte(plaintext))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(ciphertext, "\n"))

		decrypted, err := services.CipherService.DecryptText(ctx, keyPairMeta.ID, ciphertext)
		require.NoError(t, err)
		assert.Equal(t, plaintext, string(decrypted))
	}
}

func TestCipherService_Errors(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	keyPairMeta, err := services.KeyPairGenerationService.Generate(ctx, uuid.NewString(), 128)
	require.NoError(t, err)

	_, err = services.CipherService.EncryptText(ctx, uuid.NewString(), []byte("HELLO"))
	assert.ErrorIs(t, err, keys.ErrKeyPairNotFound)

	_, err = services.CipherService.DecryptText(ctx, uuid.NewString(), "1f\n")
	assert.ErrorIs(t, err, keys.ErrKeyPairNotFound)

	_, err = services.CipherService.DecryptText(ctx, keyPairMeta.ID, "1f\nnot-hex\n")
	assert.ErrorIs(t, err, cryptoalg.ErrMalformedLine)

	_, err = services.CipherService.DecryptText(ctx, keyPairMeta.ID, keyPairMeta.ModulusHex+"\n")
	assert.ErrorIs(t, err, cryptoalg.ErrBlockTooLarge)

	smallest, err := services.KeyPairGenerationService.Generate(ctx, uuid.NewString(), 6)
	require.NoError(t, err)
	_, err = services.CipherService.EncryptText(ctx, smallest.ID, []byte("HI"))
	assert.ErrorIs(t, err, cryptoalg.ErrKeyTooSmall)
}
