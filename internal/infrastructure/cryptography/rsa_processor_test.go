//go:build unit
// +build unit

package cryptography

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TestKeySize512 = 512
	TestKeySize128 = 128
)

func setupRSAProcessor(t *testing.T, opts ...Option) (cryptoalg.RSAProcessor, *testutil.RecordingLogger) {
	t.Helper()
	log := testutil.NewRecordingLogger()
	opts = append([]Option{WithRandom(testutil.SeededRandom(512))}, opts...)
	processor, err := NewRSAProcessor(log, opts...)
	require.NoError(t, err)
	return processor, log
}

func TestRSAProcessor(t *testing.T) {
	processor, log := setupRSAProcessor(t)

	t.Run("GenerateKeys", func(t *testing.T) {
		keyPair, err := processor.GenerateKeys(TestKeySize512)
		require.NoError(t, err)
		require.NotNil(t, keyPair)
		assert.Contains(t, []int{TestKeySize512 - 1, TestKeySize512}, keyPair.Public.N().BitLen())
	})

	t.Run("EncryptDecryptText", func(t *testing.T) {
		keyPair, err := processor.GenerateKeys(TestKeySize512)
		require.NoError(t, err)

		blocks, err := processor.EncryptText([]byte("HELLO"), keyPair.Public)
		require.NoError(t, err)
		require.Len(t, blocks, 1)

		decrypted, err := processor.DecryptText(blocks, keyPair.Private)
		require.NoError(t, err)
		assert.Equal(t, "HELLO", string(decrypted))
	})

	t.Run("EncryptDecryptFile", func(t *testing.T) {
		keyPair, err := processor.GenerateKeys(TestKeySize128)
		require.NoError(t, err)

		content := []byte(strings.Repeat("This is a secret message. ", 10))
		inputPath := testutil.TempFile(t, "plain.txt", content)
		dir := t.TempDir()
		encryptedPath := filepath.Join(dir, "plain.txt.enc")
		decryptedPath := filepath.Join(dir, "plain.txt.dec")

		require.NoError(t, processor.EncryptFile(inputPath, encryptedPath, keyPair.Public))
		require.NoError(t, processor.DecryptFile(encryptedPath, decryptedPath, keyPair.Private))

		decrypted, err := os.ReadFile(decryptedPath)
		require.NoError(t, err)
		assert.Equal(t, content, decrypted)
	})

	t.Run("SaveAndReadKeys", func(t *testing.T) {
		tmpDir := t.TempDir()
		privFile := filepath.Join(tmpDir, "private.pem")
		pubFile := filepath.Join(tmpDir, "public.pem")

		keyPair, err := processor.GenerateKeys(TestKeySize128)
		require.NoError(t, err)

		assert.NoError(t, processor.SavePrivateKeyToFile(keyPair.Private, privFile))
		assert.NoError(t, processor.SavePublicKeyToFile(keyPair.Public, pubFile))

		info, err := os.Stat(privFile)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		pemBytes, err := os.ReadFile(pubFile)
		require.NoError(t, err)
		assert.Contains(t, string(pemBytes), "BEGIN RSA VAULT PUBLIC KEY")

		readPriv, err := processor.ReadPrivateKey(privFile)
		require.NoError(t, err)
		assert.Equal(t, 0, keyPair.Private.N().Cmp(readPriv.N()))
		assert.Equal(t, 0, keyPair.Private.D().Cmp(readPriv.D()))

		readPub, err := processor.ReadPublicKey(pubFile)
		require.NoError(t, err)
		assert.Equal(t, 0, keyPair.Public.N().Cmp(readPub.N()))
		assert.Equal(t, 0, keyPair.Public.E().Cmp(readPub.E()))

		_, err = processor.ReadPrivateKey(pubFile)
		assert.ErrorIs(t, err, cryptoalg.ErrInvalidParameter)
	})

	t.Run("ReadKeyErrors", func(t *testing.T) {
		_, err := processor.ReadPublicKey(filepath.Join(t.TempDir(), "missing.pem"))
		assert.ErrorIs(t, err, cryptoalg.ErrIO)

		garbage := testutil.TempFile(t, "garbage.pem", []byte("not a pem file"))
		_, err = processor.ReadPublicKey(garbage)
		assert.ErrorIs(t, err, cryptoalg.ErrInvalidParameter)
	})

	t.Run("NilKeys", func(t *testing.T) {
		_, err := processor.EncryptText([]byte("x"), nil)
		assert.ErrorIs(t, err, cryptoalg.ErrInvalidParameter)

		_, err = processor.DecryptText(nil, nil)
		assert.ErrorIs(t, err, cryptoalg.ErrInvalidParameter)

		assert.ErrorIs(t, processor.EncryptFile("in", "out", nil), cryptoalg.ErrInvalidParameter)
		assert.ErrorIs(t, processor.DecryptFile("in", "out", nil), cryptoalg.ErrInvalidParameter)
		assert.ErrorIs(t, processor.SavePublicKeyToFile(nil, "out"), cryptoalg.ErrInvalidParameter)
		assert.ErrorIs(t, processor.SavePrivateKeyToFile(nil, "out"), cryptoalg.ErrInvalidParameter)
	})

	t.Run("InvalidBits", func(t *testing.T) {
		_, err := processor.GenerateKeys(4)
		assert.ErrorIs(t, err, cryptoalg.ErrInvalidParameter)
	})

	assert.NotEmpty(t, log.Messages(config.LogLevelInfo))
}

func TestRSAProcessor_RequiresLogger(t *testing.T) {
	_, err := NewRSAProcessor(nil)
	assert.ErrorIs(t, err, cryptoalg.ErrInvalidParameter)
}

func TestRSAProcessor_SeededRandomIsReproducible(t *testing.T) {
	first, _ := setupRSAProcessor(t)
	second, _ := setupRSAProcessor(t)

	a, err := first.GenerateKeys(TestKeySize128)
	require.NoError(t, err)
	b, err := second.GenerateKeys(TestKeySize128)
	require.NoError(t, err)

	assert.Equal(t, 0, a.Public.N().Cmp(b.Public.N()))
}

func TestRSAProcessor_MaxAttemptsOption(t *testing.T) {
	processor, _ := setupRSAProcessor(t, WithRandom(zeroReader{}), WithMaxAttempts(3))

	_, err := processor.GenerateKeys(cryptoalg.MinKeyBits)
	assert.ErrorIs(t, err, cryptoalg.ErrGenerationExhausted)
}

func TestRSAProcessor_ConcurrentGenerateKeys(t *testing.T) {
	processor, _ := setupRSAProcessor(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := processor.GenerateKeys(64)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestRSAProcessor_WithSettings(t *testing.T) {
	settings := config.KeyGenerationSettings{Bits: cryptoalg.MinKeyBits, MaxAttempts: 2}
	processor, _ := setupRSAProcessor(t, WithRandom(zeroReader{}), WithSettings(settings))

	_, err := processor.GenerateKeys(settings.Bits)
	assert.ErrorIs(t, err, cryptoalg.ErrGenerationExhausted)
}
