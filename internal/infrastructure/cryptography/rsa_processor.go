package cryptography

import (
	"crypto/rand"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"sync"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
)

const (
	publicKeyPEMType  = "RSA VAULT PUBLIC KEY"
	privateKeyPEMType = "RSA VAULT PRIVATE KEY"
)

// keyFileComponents is the ASN.1 body of a key file: the modulus and one exponent.
type keyFileComponents struct {
	N   *big.Int
	Exp *big.Int
}

// Option configures an rsaProcessor.
type Option func(*rsaProcessor)

// WithRandom sets the random source used for prime sampling. Defaults to crypto/rand.Reader.
func WithRandom(random io.Reader) Option {
	return func(r *rsaProcessor) {
		if random != nil {
			r.random = random
		}
	}
}

// WithMaxAttempts caps every sampling loop of key generation.
func WithMaxAttempts(maxAttempts int) Option {
	return func(r *rsaProcessor) {
		if maxAttempts > 0 {
			r.maxAttempts = maxAttempts
		}
	}
}

// WithLossyTruncation makes the block codec drop leading bytes of oversized encodings instead of failing.
func WithLossyTruncation(allow bool) Option {
	return func(r *rsaProcessor) {
		r.allowTruncation = allow
	}
}

// WithSettings applies the key generation section of the application config.
func WithSettings(settings config.KeyGenerationSettings) Option {
	return func(r *rsaProcessor) {
		WithMaxAttempts(settings.MaxAttempts)(r)
		WithLossyTruncation(settings.LossyTruncation)(r)
	}
}

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	mu              sync.Mutex
	random          io.Reader
	maxAttempts     int
	allowTruncation bool

	keyGenerator *KeyPairGenerator
	text         *TextCipher
	files        *FileCipher
	logger       logger.Logger
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor
func NewRSAProcessor(logger logger.Logger, opts ...Option) (cryptoalg.RSAProcessor, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", cryptoalg.ErrInvalidParameter)
	}

	r := &rsaProcessor{
		random:      rand.Reader,
		maxAttempts: cryptoalg.DefaultMaxAttempts,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(r)
	}

	primes := NewPrimeGenerator(r.random, r.maxAttempts, logger)
	r.keyGenerator = NewKeyPairGenerator(primes, r.maxAttempts, logger)
	r.text = NewTextCipher(NewBlockCodec(r.allowTruncation, logger))
	r.files = NewFileCipher(r.text, logger)
	return r, nil
}

// GenerateKeys generates a key pair. Calls are serialized because the random source is not safe for concurrent use.
func (r *rsaProcessor) GenerateKeys(bits uint) (*cryptoalg.KeyPair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keyPair, err := r.keyGenerator.GenerateKeys(bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA keys: %w", err)
	}
	return keyPair, nil
}

// EncryptText encrypts plaintext into one integer per block.
func (r *rsaProcessor) EncryptText(plaintext []byte, publicKey *cryptoalg.PublicKey) ([]*big.Int, error) {
	if err := publicKey.Validate(); err != nil {
		return nil, err
	}

	blocks, err := r.text.EncryptText(plaintext, publicKey, publicKey.ByteLength())
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt text: %w", err)
	}

	r.logger.Info(fmt.Sprintf("RSA text encryption succeeded, %d blocks", len(blocks)))
	return blocks, nil
}

// DecryptText decrypts blocks produced by EncryptText.
func (r *rsaProcessor) DecryptText(blocks []*big.Int, privateKey *cryptoalg.PrivateKey) ([]byte, error) {
	if err := privateKey.Validate(); err != nil {
		return nil, err
	}

	plaintext, err := r.text.DecryptText(blocks, privateKey, privateKey.ByteLength())
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt text: %w", err)
	}

	r.logger.Info(fmt.Sprintf("RSA text decryption succeeded, %d blocks", len(blocks)))
	return plaintext, nil
}

// EncryptFile encrypts inputFilePath into hex lines at outputFilePath.
func (r *rsaProcessor) EncryptFile(inputFilePath, outputFilePath string, publicKey *cryptoalg.PublicKey) error {
	if err := publicKey.Validate(); err != nil {
		return err
	}
	if err := r.files.EncryptFile(inputFilePath, outputFilePath, publicKey, publicKey.ByteLength()); err != nil {
		return fmt.Errorf("failed to encrypt file %s: %w", inputFilePath, err)
	}
	r.logger.Info("RSA file encryption succeeded ", outputFilePath)
	return nil
}

// DecryptFile decrypts the hex lines of inputFilePath into outputFilePath.
func (r *rsaProcessor) DecryptFile(inputFilePath, outputFilePath string, privateKey *cryptoalg.PrivateKey) error {
	if err := privateKey.Validate(); err != nil {
		return err
	}
	if err := r.files.DecryptFile(inputFilePath, outputFilePath, privateKey, privateKey.ByteLength()); err != nil {
		return fmt.Errorf("failed to decrypt file %s: %w", inputFilePath, err)
	}
	r.logger.Info("RSA file decryption succeeded ", outputFilePath)
	return nil
}

// SavePrivateKeyToFile saves the private key to a PEM-encoded file.
func (r *rsaProcessor) SavePrivateKeyToFile(privateKey *cryptoalg.PrivateKey, filename string) error {
	if err := privateKey.Validate(); err != nil {
		return err
	}
	if err := r.writeKeyFile(filename, privateKeyPEMType, privateKey.N(), privateKey.D()); err != nil {
		return fmt.Errorf("failed to save private key: %w", err)
	}
	r.logger.Info("Saved RSA private key ", filename)
	return nil
}

// SavePublicKeyToFile saves the public key to a PEM-encoded file.
func (r *rsaProcessor) SavePublicKeyToFile(publicKey *cryptoalg.PublicKey, filename string) error {
	if err := publicKey.Validate(); err != nil {
		return err
	}
	if err := r.writeKeyFile(filename, publicKeyPEMType, publicKey.N(), publicKey.E()); err != nil {
		return fmt.Errorf("failed to save public key: %w", err)
	}
	r.logger.Info("Saved RSA public key ", filename)
	return nil
}

// ReadPrivateKey reads a private key from a PEM-encoded file.
func (r *rsaProcessor) ReadPrivateKey(privateKeyPath string) (*cryptoalg.PrivateKey, error) {
	components, err := readKeyFile(privateKeyPath, privateKeyPEMType)
	if err != nil {
		return nil, err
	}
	return cryptoalg.NewPrivateKey(components.N, components.Exp)
}

// ReadPublicKey reads a public key from a PEM-encoded file.
func (r *rsaProcessor) ReadPublicKey(publicKeyPath string) (*cryptoalg.PublicKey, error) {
	components, err := readKeyFile(publicKeyPath, publicKeyPEMType)
	if err != nil {
		return nil, err
	}
	return cryptoalg.NewPublicKey(components.N, components.Exp)
}

func (r *rsaProcessor) writeKeyFile(filename, blockType string, n, exp *big.Int) error {
	der, err := asn1.Marshal(keyFileComponents{N: n, Exp: exp})
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}

	file, err := os.OpenFile(filepath.Clean(filename), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("%w: failed to create key file: %w", cryptoalg.ErrIO, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.Warn(fmt.Sprintf("failed to close file: %v", err))
		}
	}()

	if err := pem.Encode(file, &pem.Block{Type: blockType, Bytes: der}); err != nil {
		return fmt.Errorf("%w: failed to encode key: %w", cryptoalg.ErrIO, err)
	}
	return nil
}

func readKeyFile(path, blockType string) (*keyFileComponents, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read key file: %w", cryptoalg.ErrIO, err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: failed to parse PEM block containing the key", cryptoalg.ErrInvalidParameter)
	}
	if block.Type != blockType {
		return nil, fmt.Errorf("%w: expected PEM block %q, got %q", cryptoalg.ErrInvalidParameter, blockType, block.Type)
	}

	var components keyFileComponents
	rest, err := asn1.Unmarshal(block.Bytes, &components)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse key: %w", cryptoalg.ErrInvalidParameter, err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: trailing data after key", cryptoalg.ErrInvalidParameter)
	}
	return &components, nil
}
