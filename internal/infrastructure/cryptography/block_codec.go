package cryptography

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
)

// BlockCodec converts between byte blocks and integers, big-endian.
type BlockCodec struct {
	allowTruncation bool
	logger          logger.Logger
}

// NewBlockCodec creates a BlockCodec. With allowTruncation set, encodings longer than the
// requested length lose their leading bytes and a warning is logged; otherwise they fail with ErrBlockTooLarge.
func NewBlockCodec(allowTruncation bool, logger logger.Logger) *BlockCodec {
	return &BlockCodec{
		allowTruncation: allowTruncation,
		logger:          logger,
	}
}

// BytesToInt interprets b as a big-endian unsigned integer. Empty input maps to 0.
func (c *BlockCodec) BytesToInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// IntToBytes encodes v big-endian. A fixedLength of 0 returns the natural encoding
// (a single zero byte for 0); otherwise the result is left-zero-padded to fixedLength.
func (c *BlockCodec) IntToBytes(v *big.Int, fixedLength int) ([]byte, error) {
	if v == nil || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: cannot encode a nil or negative integer", cryptoalg.ErrInvalidParameter)
	}
	if fixedLength < 0 {
		return nil, fmt.Errorf("%w: negative block length %d", cryptoalg.ErrInvalidParameter, fixedLength)
	}

	natural := v.Bytes()
	if fixedLength == 0 {
		if len(natural) == 0 {
			return []byte{0}, nil
		}
		return natural, nil
	}

	if len(natural) > fixedLength {
		if !c.allowTruncation {
			return nil, fmt.Errorf("%w: integer needs %d bytes but the block holds %d",
				cryptoalg.ErrBlockTooLarge, len(natural), fixedLength)
		}
		c.logger.Warn(fmt.Sprintf("Integer encoding has %d bytes, expected %d; truncating leading bytes",
			len(natural), fixedLength))
		return natural[len(natural)-fixedLength:], nil
	}

	out := make([]byte, fixedLength)
	copy(out[fixedLength-len(natural):], natural)
	return out, nil
}

// ApproximateByteLength returns the byte width of n, and 1 for n = 0.
func (c *BlockCodec) ApproximateByteLength(n *big.Int) int {
	return cryptoalg.ApproximateByteLength(n)
}

// BlockSize returns the plaintext chunk size for a modulus of nByteLength bytes.
func BlockSize(nByteLength int) (int, error) {
	if nByteLength <= 1 {
		return 0, fmt.Errorf("%w: modulus byte length %d leaves no room for data", cryptoalg.ErrKeyTooSmall, nByteLength)
	}
	return nByteLength - 1, nil
}
