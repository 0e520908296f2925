package cryptography

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
	"github.com/dustin/go-humanize"
)

// FileCipher streams files through the block cipher. The ciphertext on disk is one
// lowercase hexadecimal integer per line, in block order.
type FileCipher struct {
	text   *TextCipher
	logger logger.Logger
}

// NewFileCipher creates a FileCipher on top of a TextCipher.
func NewFileCipher(text *TextCipher, logger logger.Logger) *FileCipher {
	return &FileCipher{
		text:   text,
		logger: logger,
	}
}

// EncryptFile reads inputFilePath in chunks of nByteLength-1 bytes and writes one hex line per encrypted chunk.
// A partially written output file is left on disk when encryption fails midway.
func (f *FileCipher) EncryptFile(inputFilePath, outputFilePath string, publicKey *cryptoalg.PublicKey, nByteLength int) (err error) {
	if err := publicKey.Validate(); err != nil {
		return err
	}
	blockSize, err := BlockSize(nByteLength)
	if err != nil {
		return err
	}

	in, err := os.Open(filepath.Clean(inputFilePath))
	if err != nil {
		return fmt.Errorf("%w: failed to open input file: %w", cryptoalg.ErrIO, err)
	}
	defer f.closeFile(in)

	out, err := os.OpenFile(filepath.Clean(outputFilePath), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("%w: failed to open output file: %w", cryptoalg.ErrIO, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close output file: %w", cryptoalg.ErrIO, cerr)
		}
	}()

	writer := bufio.NewWriter(out)
	buffer := make([]byte, blockSize)
	var blocks int
	var total uint64

	for {
		read, rerr := io.ReadFull(in, buffer)
		if read > 0 {
			encrypted, err := f.text.EncryptBlock(buffer[:read], publicKey)
			if err != nil {
				return fmt.Errorf("block %d: %w", blocks+1, err)
			}
			if _, err := writer.WriteString(encrypted.Text(16) + "\n"); err != nil {
				return fmt.Errorf("%w: failed to write output file: %w", cryptoalg.ErrIO, err)
			}
			blocks++
			total += uint64(read)
		}
		if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
			break
		}
		if rerr != nil {
			return fmt.Errorf("%w: failed to read input file: %w", cryptoalg.ErrIO, rerr)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("%w: failed to write output file: %w", cryptoalg.ErrIO, err)
	}

	f.logger.Info(fmt.Sprintf("Encrypted %s into %d blocks", humanize.Bytes(total), blocks))
	return nil
}

// DecryptFile reads the hex lines of inputFilePath and writes the recovered bytes to outputFilePath.
// Blank lines are ignored and malformed lines are skipped with a warning. The call fails when the
// file had processable lines but none of them parsed.
func (f *FileCipher) DecryptFile(inputFilePath, outputFilePath string, privateKey *cryptoalg.PrivateKey, nByteLength int) (err error) {
	if err := privateKey.Validate(); err != nil {
		return err
	}
	blockSize, err := BlockSize(nByteLength)
	if err != nil {
		return err
	}

	in, err := os.Open(filepath.Clean(inputFilePath))
	if err != nil {
		return fmt.Errorf("%w: failed to open input file: %w", cryptoalg.ErrIO, err)
	}
	defer f.closeFile(in)

	out, err := os.OpenFile(filepath.Clean(outputFilePath), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("%w: failed to open output file: %w", cryptoalg.ErrIO, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close output file: %w", cryptoalg.ErrIO, cerr)
		}
	}()

	blocks, processable, err := f.readBlocks(in)
	if err != nil {
		return err
	}
	if processable == 0 {
		f.logger.Info("Ciphertext file has no blocks, wrote empty output")
		return nil
	}
	if len(blocks) == 0 {
		return fmt.Errorf("%w: none of %d ciphertext lines could be parsed", cryptoalg.ErrMalformedLine, processable)
	}

	plain, err := f.text.decryptBlocks(blocks, privateKey, blockSize)
	if err != nil {
		return err
	}
	plain = StripPadding(plain, blockSize)

	if _, err := out.Write(plain); err != nil {
		return fmt.Errorf("%w: failed to write output file: %w", cryptoalg.ErrIO, err)
	}

	f.logger.Info(fmt.Sprintf("Decrypted %d blocks into %s", len(blocks), humanize.Bytes(uint64(len(plain)))))
	return nil
}

// readBlocks parses every line of r. It returns the parsed blocks and the number of non-blank lines.
func (f *FileCipher) readBlocks(r io.Reader) ([]*big.Int, int, error) {
	reader := bufio.NewReader(r)
	var blocks []*big.Int
	processable := 0

	for lineNumber := 1; ; lineNumber++ {
		line, rerr := reader.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return nil, 0, fmt.Errorf("%w: failed to read input file: %w", cryptoalg.ErrIO, rerr)
		}

		if normalized := NormalizeCipherLine(line); normalized != "" {
			processable++
			block, err := ParseCipherLine(normalized)
			if err != nil {
				f.logger.Warn(fmt.Sprintf("Line %d: %v, skipping it (original: [%s])",
					lineNumber, err, strings.TrimRight(line, "\r\n")))
			} else {
				blocks = append(blocks, block)
			}
		}

		if errors.Is(rerr, io.EOF) {
			return blocks, processable, nil
		}
	}
}

func (f *FileCipher) closeFile(file *os.File) {
	if err := file.Close(); err != nil {
		f.logger.Warn(fmt.Sprintf("failed to close file %s: %v", file.Name(), err))
	}
}

// NormalizeCipherLine trims surrounding whitespace and one enclosing pair of square brackets.
// An empty result means the line carries no block.
func NormalizeCipherLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) >= 2 && trimmed[0] == '[' && trimmed[len(trimmed)-1] == ']' {
		trimmed = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	}
	return trimmed
}

// ParseCipherLine parses a normalized line that must consist of hexadecimal digits only.
func ParseCipherLine(normalized string) (*big.Int, error) {
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty line", cryptoalg.ErrMalformedLine)
	}
	for i := 0; i < len(normalized); i++ {
		if !isHexDigit(normalized[i]) {
			return nil, fmt.Errorf("%w: unexpected character %q at offset %d", cryptoalg.ErrMalformedLine, normalized[i], i)
		}
	}

	value, ok := new(big.Int).SetString(normalized, 16)
	if !ok {
		return nil, fmt.Errorf("%w: not a hexadecimal integer", cryptoalg.ErrMalformedLine)
	}
	return value, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
