package cryptography

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
)

// TextCipher encrypts byte payloads block by block under a fixed key. It holds no state besides its codec.
type TextCipher struct {
	codec *BlockCodec
}

// NewTextCipher creates a TextCipher using codec for byte/integer framing.
func NewTextCipher(codec *BlockCodec) *TextCipher {
	return &TextCipher{codec: codec}
}

// EncryptBlock returns m^e mod n for the big-endian integer m of block.
func (c *TextCipher) EncryptBlock(block []byte, publicKey *cryptoalg.PublicKey) (*big.Int, error) {
	if err := publicKey.Validate(); err != nil {
		return nil, err
	}

	n := publicKey.N()
	m := c.codec.BytesToInt(block)
	if m.Cmp(n) >= 0 {
		return nil, fmt.Errorf("%w: plaintext block integer is not smaller than n", cryptoalg.ErrBlockTooLarge)
	}
	return new(big.Int).Exp(m, publicKey.E(), n), nil
}

// DecryptBlock returns c^d mod n encoded on expectedLen bytes (natural length when expectedLen is 0).
func (c *TextCipher) DecryptBlock(encrypted *big.Int, privateKey *cryptoalg.PrivateKey, expectedLen int) ([]byte, error) {
	m, err := c.decryptInt(encrypted, privateKey)
	if err != nil {
		return nil, err
	}
	return c.codec.IntToBytes(m, expectedLen)
}

func (c *TextCipher) decryptInt(encrypted *big.Int, privateKey *cryptoalg.PrivateKey) (*big.Int, error) {
	if err := privateKey.Validate(); err != nil {
		return nil, err
	}
	if encrypted == nil || encrypted.Sign() < 0 {
		return nil, fmt.Errorf("%w: ciphertext block must be a non-negative integer", cryptoalg.ErrInvalidParameter)
	}

	n := privateKey.N()
	if encrypted.Cmp(n) >= 0 {
		return nil, fmt.Errorf("%w: ciphertext block integer is not smaller than n", cryptoalg.ErrBlockTooLarge)
	}
	return new(big.Int).Exp(encrypted, privateKey.D(), n), nil
}

// EncryptText splits text into chunks of nByteLength-1 bytes and encrypts each chunk.
// The last chunk is encrypted at its natural, possibly shorter, length.
func (c *TextCipher) EncryptText(text []byte, publicKey *cryptoalg.PublicKey, nByteLength int) ([]*big.Int, error) {
	blockSize, err := BlockSize(nByteLength)
	if err != nil {
		return nil, err
	}

	blocks := make([]*big.Int, 0, (len(text)+blockSize-1)/blockSize)
	for offset := 0; offset < len(text); offset += blockSize {
		end := min(offset+blockSize, len(text))
		encrypted, err := c.EncryptBlock(text[offset:end], publicKey)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", len(blocks)+1, err)
		}
		blocks = append(blocks, encrypted)
	}
	return blocks, nil
}

// DecryptText decrypts blocks and removes the zero padding of the last block.
func (c *TextCipher) DecryptText(blocks []*big.Int, privateKey *cryptoalg.PrivateKey, nByteLength int) ([]byte, error) {
	blockSize, err := BlockSize(nByteLength)
	if err != nil {
		return nil, err
	}

	plain, err := c.decryptBlocks(blocks, privateKey, blockSize)
	if err != nil {
		return nil, err
	}
	return StripPadding(plain, blockSize), nil
}

// decryptBlocks concatenates the decrypted blocks, blockSize bytes each.
// Full blocks are left-padded, which restores their leading zero bytes exactly.
// The last block was encrypted at its natural length, so its bytes are placed at the
// start of the block and the remainder is zero padding for the caller to strip.
func (c *TextCipher) decryptBlocks(blocks []*big.Int, privateKey *cryptoalg.PrivateKey, blockSize int) ([]byte, error) {
	plain := make([]byte, 0, len(blocks)*blockSize)
	last := len(blocks) - 1

	for i, encrypted := range blocks {
		if i < last {
			block, err := c.DecryptBlock(encrypted, privateKey, blockSize)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", i+1, err)
			}
			plain = append(plain, block...)
			continue
		}

		m, err := c.decryptInt(encrypted, privateKey)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		length := 0
		if (m.BitLen()+7)/8 > blockSize {
			length = blockSize
		}
		block, err := c.codec.IntToBytes(m, length)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		plain = append(plain, block...)
		plain = append(plain, make([]byte, blockSize-len(block))...)
	}
	return plain, nil
}
