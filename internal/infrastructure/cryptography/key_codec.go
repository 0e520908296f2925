package cryptography

import (
	"bufio"
	"fmt"
	"math/big"
	"strings"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
)

const keyFieldSeparator = ";"

// FormatKeyPair renders a key pair as "nHex;eHex;dHex", lowercase and without prefixes.
func FormatKeyPair(keyPair *cryptoalg.KeyPair) (string, error) {
	if keyPair == nil {
		return "", fmt.Errorf("%w: key pair cannot be nil", cryptoalg.ErrInvalidParameter)
	}
	if err := keyPair.Public.Validate(); err != nil {
		return "", err
	}
	if err := keyPair.Private.Validate(); err != nil {
		return "", err
	}

	return strings.Join([]string{
		keyPair.Public.N().Text(16),
		keyPair.Public.E().Text(16),
		keyPair.Private.D().Text(16),
	}, keyFieldSeparator), nil
}

// ParseKeyPair parses the "nHex;eHex;dHex" form produced by FormatKeyPair.
func ParseKeyPair(encoded string) (*cryptoalg.KeyPair, error) {
	fields := strings.Split(strings.TrimSpace(encoded), keyFieldSeparator)
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: expected 3 key fields, got %d", cryptoalg.ErrInvalidParameter, len(fields))
	}

	n, err := parseKeyField("n", fields[0])
	if err != nil {
		return nil, err
	}
	e, err := parseKeyField("e", fields[1])
	if err != nil {
		return nil, err
	}
	d, err := parseKeyField("d", fields[2])
	if err != nil {
		return nil, err
	}
	return cryptoalg.NewKeyPair(n, e, d)
}

// ParsePublicKey builds a public key from hexadecimal n and e.
func ParsePublicKey(nHex, eHex string) (*cryptoalg.PublicKey, error) {
	n, err := parseKeyField("n", nHex)
	if err != nil {
		return nil, err
	}
	e, err := parseKeyField("e", eHex)
	if err != nil {
		return nil, err
	}
	return cryptoalg.NewPublicKey(n, e)
}

// ParsePrivateKey builds a private key from hexadecimal n and d.
func ParsePrivateKey(nHex, dHex string) (*cryptoalg.PrivateKey, error) {
	n, err := parseKeyField("n", nHex)
	if err != nil {
		return nil, err
	}
	d, err := parseKeyField("d", dHex)
	if err != nil {
		return nil, err
	}
	return cryptoalg.NewPrivateKey(n, d)
}

func parseKeyField(name, value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: key field %s is empty", cryptoalg.ErrInvalidParameter, name)
	}
	parsed, err := ParseCipherLine(value)
	if err != nil {
		return nil, fmt.Errorf("%w: key field %s is not hexadecimal", cryptoalg.ErrInvalidParameter, name)
	}
	return parsed, nil
}

// FormatBlocks renders ciphertext blocks as newline-terminated lowercase hex lines, the file cipher's format.
func FormatBlocks(blocks []*big.Int) string {
	var sb strings.Builder
	for _, block := range blocks {
		sb.WriteString(block.Text(16))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBlocks parses hex lines with the same tolerance as file decryption, but any malformed
// line fails the whole call.
func ParseBlocks(encoded string) ([]*big.Int, error) {
	scanner := bufio.NewScanner(strings.NewReader(encoded))
	scanner.Buffer(make([]byte, 0, 64*1024), max(64*1024, len(encoded)+1))

	var blocks []*big.Int
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		normalized := NormalizeCipherLine(scanner.Text())
		if normalized == "" {
			continue
		}
		block, err := ParseCipherLine(normalized)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		blocks = append(blocks, block)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoalg.ErrMalformedLine, err)
	}
	return blocks, nil
}
