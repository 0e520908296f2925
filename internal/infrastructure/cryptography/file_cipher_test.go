//go:build unit
// +build unit

package cryptography

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexLine = regexp.MustCompile(`^[0-9a-f]+$`)

func newTestFileCipher(log *testutil.RecordingLogger) *FileCipher {
	return NewFileCipher(NewTextCipher(NewBlockCodec(false, log)), log)
}

func printableContent(size int) []byte {
	content := make([]byte, size)
	for i := range content {
		content[i] = byte(' ' + i%90)
	}
	return content
}

func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestFileCipher_RoundTrip(t *testing.T) {
	keyPair := generateTestKeyPair(t, 256, 77)
	nByteLength := keyPair.Public.ByteLength()
	blockSize, err := BlockSize(nByteLength)
	require.NoError(t, err)

	tests := []struct {
		name    string
		content []byte
	}{
		{"short text", []byte("HELLO")},
		{"exactly one block", printableContent(blockSize)},
		{"many blocks", printableContent(blockSize*7 + 5)},
		{"embedded zeros", []byte("head\x00\x00tail\x00end")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := testutil.NewRecordingLogger()
			fileCipher := newTestFileCipher(log)
			dir := t.TempDir()
			inputPath := testutil.TempFile(t, "plain.txt", tt.content)
			encryptedPath := filepath.Join(dir, "cipher.txt")
			decryptedPath := filepath.Join(dir, "plain.out")

			require.NoError(t, fileCipher.EncryptFile(inputPath, encryptedPath, keyPair.Public, nByteLength))

			lines := readLines(t, encryptedPath)
			assert.Len(t, lines, (len(tt.content)+blockSize-1)/blockSize)
			for _, line := range lines {
				assert.Regexp(t, hexLine, line)
			}

			require.NoError(t, fileCipher.DecryptFile(encryptedPath, decryptedPath, keyPair.Private, nByteLength))

			decrypted, err := os.ReadFile(decryptedPath)
			require.NoError(t, err)
			assert.Equal(t, tt.content, decrypted)
			assert.Empty(t, log.Messages(config.LogLevelWarning))
		})
	}
}

func TestFileCipher_BinaryRoundTrip(t *testing.T) {
	for keyName, keyPair := range binaryTestKeys(t) {
		nByteLength := keyPair.Public.ByteLength()
		blockSize, err := BlockSize(nByteLength)
		require.NoError(t, err)

		tests := []struct {
			name    string
			content []byte
		}{
			{"full 0xff block", bytes.Repeat([]byte{0xff}, blockSize)},
			{"0xff blocks with a short tail", bytes.Repeat([]byte{0xff}, blockSize*4+1)},
			{"random blocks", binaryContent(11, blockSize*9+blockSize/2, blockSize)},
			{"random 8 KiB", binaryContent(99, 8192, blockSize)},
		}

		for _, tt := range tests {
			t.Run(keyName+"/"+tt.name, func(t *testing.T) {
				log := testutil.NewRecordingLogger()
				fileCipher := newTestFileCipher(log)
				dir := t.TempDir()
				inputPath := testutil.TempFile(t, "plain.bin", tt.content)
				encryptedPath := filepath.Join(dir, "cipher.txt")
				decryptedPath := filepath.Join(dir, "plain.out")

				require.NoError(t, fileCipher.EncryptFile(inputPath, encryptedPath, keyPair.Public, nByteLength))
				assert.Len(t, readLines(t, encryptedPath), (len(tt.content)+blockSize-1)/blockSize)

				require.NoError(t, fileCipher.DecryptFile(encryptedPath, decryptedPath, keyPair.Private, nByteLength))

				decrypted, err := os.ReadFile(decryptedPath)
				require.NoError(t, err)
				assert.Equal(t, tt.content, decrypted)
				assert.Empty(t, log.Messages(config.LogLevelWarning))
			})
		}
	}
}

func TestFileCipher_EmptyFile(t *testing.T) {
	keyPair := generateTestKeyPair(t, 128, 5)
	fileCipher := newTestFileCipher(testutil.NewRecordingLogger())
	dir := t.TempDir()
	inputPath := testutil.TempFile(t, "empty.txt", nil)
	encryptedPath := filepath.Join(dir, "cipher.txt")
	decryptedPath := filepath.Join(dir, "plain.out")

	require.NoError(t, fileCipher.EncryptFile(inputPath, encryptedPath, keyPair.Public, keyPair.Public.ByteLength()))
	info, err := os.Stat(encryptedPath)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	require.NoError(t, fileCipher.DecryptFile(encryptedPath, decryptedPath, keyPair.Private, keyPair.Private.ByteLength()))
	info, err = os.Stat(decryptedPath)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestFileCipher_DecryptToleratesFormatting(t *testing.T) {
	keyPair := generateTestKeyPair(t, 128, 6)
	nByteLength := keyPair.Public.ByteLength()
	text := newTestTextCipher()

	blocks, err := text.EncryptText([]byte("formatted ciphertext lines"), keyPair.Public, nByteLength)
	require.NoError(t, err)
	require.Greater(t, len(blocks), 1)

	var sb strings.Builder
	sb.WriteString("\n   \n")
	for i, block := range blocks {
		switch i % 3 {
		case 0:
			sb.WriteString("[" + block.Text(16) + "]\r\n")
		case 1:
			sb.WriteString("\t [ " + strings.ToUpper(block.Text(16)) + " ]  \n\n")
		default:
			sb.WriteString("  " + block.Text(16) + "  \n")
		}
	}
	sb.WriteString("[]\n")
	// the final line has no newline terminator
	sb.WriteString("   ")

	log := testutil.NewRecordingLogger()
	inputPath := testutil.TempFile(t, "cipher.txt", []byte(sb.String()))
	outputPath := filepath.Join(t.TempDir(), "plain.out")

	require.NoError(t, newTestFileCipher(log).DecryptFile(inputPath, outputPath, keyPair.Private, nByteLength))

	decrypted, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "formatted ciphertext lines", string(decrypted))
	assert.Empty(t, log.Messages(config.LogLevelWarning))
}

func TestFileCipher_DecryptSkipsMalformedLines(t *testing.T) {
	keyPair := generateTestKeyPair(t, 128, 6)
	nByteLength := keyPair.Public.ByteLength()

	blocks, err := newTestTextCipher().EncryptText([]byte("skip the noise"), keyPair.Public, nByteLength)
	require.NoError(t, err)

	content := "0x" + blocks[0].Text(16) + "\n" + FormatBlocks(blocks) + "not-hex\n12 34\n"

	log := testutil.NewRecordingLogger()
	inputPath := testutil.TempFile(t, "cipher.txt", []byte(content))
	outputPath := filepath.Join(t.TempDir(), "plain.out")

	require.NoError(t, newTestFileCipher(log).DecryptFile(inputPath, outputPath, keyPair.Private, nByteLength))

	decrypted, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "skip the noise", string(decrypted))

	warnings := log.Messages(config.LogLevelWarning)
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "Line 1")
	assert.Contains(t, warnings[1], "not-hex")
	assert.Contains(t, warnings[2], "12 34")
}

func TestFileCipher_DecryptFailsWhenNoLineParses(t *testing.T) {
	keyPair := generateTestKeyPair(t, 128, 6)
	inputPath := testutil.TempFile(t, "cipher.txt", []byte("garbage\n[zz]\n"))
	outputPath := filepath.Join(t.TempDir(), "plain.out")

	err := newTestFileCipher(testutil.NewRecordingLogger()).
		DecryptFile(inputPath, outputPath, keyPair.Private, keyPair.Private.ByteLength())
	assert.ErrorIs(t, err, cryptoalg.ErrMalformedLine)
}

func TestFileCipher_DecryptRejectsBlockNotBelowModulus(t *testing.T) {
	keyPair := generateTestKeyPair(t, 128, 6)
	inputPath := testutil.TempFile(t, "cipher.txt", []byte(keyPair.Private.N().Text(16)+"\n"))
	outputPath := filepath.Join(t.TempDir(), "plain.out")

	err := newTestFileCipher(testutil.NewRecordingLogger()).
		DecryptFile(inputPath, outputPath, keyPair.Private, keyPair.Private.ByteLength())
	assert.ErrorIs(t, err, cryptoalg.ErrBlockTooLarge)
}

func TestFileCipher_IOErrors(t *testing.T) {
	keyPair := generateTestKeyPair(t, 128, 6)
	fileCipher := newTestFileCipher(testutil.NewRecordingLogger())
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")
	unwritable := filepath.Join(dir, "no-such-dir", "out.txt")
	existing := testutil.TempFile(t, "plain.txt", []byte("data"))

	err := fileCipher.EncryptFile(missing, filepath.Join(dir, "out.txt"), keyPair.Public, keyPair.Public.ByteLength())
	assert.ErrorIs(t, err, cryptoalg.ErrIO)

	err = fileCipher.EncryptFile(existing, unwritable, keyPair.Public, keyPair.Public.ByteLength())
	assert.ErrorIs(t, err, cryptoalg.ErrIO)

	err = fileCipher.DecryptFile(missing, filepath.Join(dir, "out.txt"), keyPair.Private, keyPair.Private.ByteLength())
	assert.ErrorIs(t, err, cryptoalg.ErrIO)
}

func TestFileCipher_KeyTooSmall(t *testing.T) {
	keyPair := generateTestKeyPair(t, cryptoalg.MinKeyBits, 2)
	fileCipher := newTestFileCipher(testutil.NewRecordingLogger())
	inputPath := testutil.TempFile(t, "plain.txt", []byte("data"))
	outputPath := filepath.Join(t.TempDir(), "out.txt")

	err := fileCipher.EncryptFile(inputPath, outputPath, keyPair.Public, keyPair.Public.ByteLength())
	assert.ErrorIs(t, err, cryptoalg.ErrKeyTooSmall)

	err = fileCipher.DecryptFile(inputPath, outputPath, keyPair.Private, keyPair.Private.ByteLength())
	assert.ErrorIs(t, err, cryptoalg.ErrKeyTooSmall)
}

func TestNormalizeCipherLine(t *testing.T) {
	tests := map[string]string{
		"  abc  \n":  "abc",
		"[abc]":      "abc",
		" [ abc ] ":  "abc",
		"[[abc]]":    "[abc]",
		"[]":         "",
		"   ":        "",
		"[abc":       "[abc",
		"\tdeadbeef": "deadbeef",
	}

	for input, want := range tests {
		assert.Equal(t, want, NormalizeCipherLine(input), "input %q", input)
	}
}

func TestParseCipherLine(t *testing.T) {
	value, err := ParseCipherLine("DeadBeef")
	require.NoError(t, err)
	assert.Equal(t, int64(0xdeadbeef), value.Int64())

	for _, line := range []string{"", "0x1f", "1f g", "-1f", "+1f", "1_f", "[1f]"} {
		_, err := ParseCipherLine(line)
		assert.ErrorIs(t, err, cryptoalg.ErrMalformedLine, "line %q", line)
	}
}
