package cryptoalg

import (
	"io"
	"math/big"
)

// RandomSource is the random number capability consumed by prime sampling.
// It is passed explicitly to every component that needs randomness and is never global.
// Implementations are not required to be safe for concurrent use.
type RandomSource = io.Reader

// RSAProcessor handles the textbook RSA engine operations.
// The scheme has no padding and is deterministic: it is meant for teaching, not for protecting data.
type RSAProcessor interface {
	// GenerateKeys generates a key pair whose modulus has approximately the given bit length.
	// Sizes below 128 bits are accepted for demonstration but logged as insecure.
	GenerateKeys(bits uint) (*KeyPair, error)

	// EncryptText splits plaintext into blocks of byteLength(n)-1 bytes and encrypts each block.
	// The returned blocks are order-significant.
	EncryptText(plaintext []byte, publicKey *PublicKey) ([]*big.Int, error)

	// DecryptText decrypts the blocks produced by EncryptText and strips trailing zero padding.
	// A plaintext that ends in zero bytes loses those bytes on the way back.
	DecryptText(blocks []*big.Int, privateKey *PrivateKey) ([]byte, error)

	// EncryptFile streams the input file through the block cipher and writes one lowercase hex line per block.
	EncryptFile(inputFilePath, outputFilePath string, publicKey *PublicKey) error

	// DecryptFile reads hex lines produced by EncryptFile and writes the recovered bytes.
	// Malformed lines are skipped with a warning.
	DecryptFile(inputFilePath, outputFilePath string, privateKey *PrivateKey) error

	// SavePrivateKeyToFile saves the private key to a PEM-encoded file.
	SavePrivateKeyToFile(privateKey *PrivateKey, filename string) error

	// SavePublicKeyToFile saves the public key to a PEM-encoded file.
	SavePublicKeyToFile(publicKey *PublicKey, filename string) error

	// ReadPrivateKey reads a private key from a PEM-encoded file.
	ReadPrivateKey(privateKeyPath string) (*PrivateKey, error)

	// ReadPublicKey reads a public key from a PEM-encoded file.
	ReadPublicKey(publicKeyPath string) (*PublicKey, error)
}
