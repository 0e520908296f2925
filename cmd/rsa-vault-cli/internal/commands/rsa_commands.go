package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RSACommandHandler encapsulates logic for handling RSA operations via CLI.
type RSACommandHandler struct {
	rsaProcessor  cryptoalg.RSAProcessor
	logger        logger.Logger
	keyGeneration config.KeyGenerationSettings
}

// NewRSACommandHandler initializes a new RSACommandHandler with logging and an RSA processor.
func NewRSACommandHandler(cfg *config.CLIConfig) (*RSACommandHandler, error) {
	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(loggerInstance, cryptography.WithSettings(cfg.KeyGeneration))
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	return &RSACommandHandler{
		rsaProcessor:  rsaProcessor,
		logger:        loggerInstance,
		keyGeneration: cfg.KeyGeneration,
	}, nil
}

// GenerateKeysCmd generates an RSA key pair and persists both halves as PEM files in a selected directory
func (commandHandler *RSACommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	bits := commandHandler.keyGeneration.Bits
	if cmd.Flags().Changed("bits") {
		flagBits, err := cmd.Flags().GetUint("bits")
		if err != nil {
			return fmt.Errorf("invalid bits flag: %w", err)
		}
		bits = flagBits
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		return fmt.Errorf("invalid key-dir flag: %w", err)
	}

	keyPair, err := commandHandler.rsaProcessor.GenerateKeys(bits)
	if err != nil {
		return err
	}

	uniqueID := uuid.New().String()
	privateKeyFilePath := filepath.Join(keyDir, uniqueID+"-private-key.pem")
	if err := commandHandler.rsaProcessor.SavePrivateKeyToFile(keyPair.Private, privateKeyFilePath); err != nil {
		return err
	}

	publicKeyFilePath := filepath.Join(keyDir, uniqueID+"-public-key.pem")
	if err := commandHandler.rsaProcessor.SavePublicKeyToFile(keyPair.Public, publicKeyFilePath); err != nil {
		return err
	}

	commandHandler.logger.Info(fmt.Sprintf("Generated %d-bit key pair %s", keyPair.Public.N().BitLen(), uniqueID))
	fmt.Fprintln(cmd.OutOrStdout(), privateKeyFilePath)
	fmt.Fprintln(cmd.OutOrStdout(), publicKeyFilePath)
	return nil
}

// EncryptTextCmd encrypts text and prints one hexadecimal block per line
func (commandHandler *RSACommandHandler) EncryptTextCmd(cmd *cobra.Command, _ []string) error {
	publicKeyPath, err := requiredString(cmd, "public-key")
	if err != nil {
		return err
	}
	text, err := textInput(cmd, "text")
	if err != nil {
		return err
	}

	publicKey, err := commandHandler.rsaProcessor.ReadPublicKey(publicKeyPath)
	if err != nil {
		return err
	}

	blocks, err := commandHandler.rsaProcessor.EncryptText(text, publicKey)
	if err != nil {
		return err
	}

	_, err = io.WriteString(cmd.OutOrStdout(), cryptography.FormatBlocks(blocks))
	return err
}

// DecryptTextCmd decrypts hexadecimal block lines and prints the plaintext
func (commandHandler *RSACommandHandler) DecryptTextCmd(cmd *cobra.Command, _ []string) error {
	privateKeyPath, err := requiredString(cmd, "private-key")
	if err != nil {
		return err
	}
	ciphertext, err := textInput(cmd, "ciphertext")
	if err != nil {
		return err
	}

	privateKey, err := commandHandler.rsaProcessor.ReadPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}

	blocks, err := cryptography.ParseBlocks(string(ciphertext))
	if err != nil {
		return err
	}

	plaintext, err := commandHandler.rsaProcessor.DecryptText(blocks, privateKey)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(plaintext)
	return err
}

// EncryptFileCmd encrypts a file into a text file of hexadecimal block lines
func (commandHandler *RSACommandHandler) EncryptFileCmd(cmd *cobra.Command, _ []string) error {
	inputFile, outputFile, err := filePaths(cmd)
	if err != nil {
		return err
	}
	publicKeyPath, err := requiredString(cmd, "public-key")
	if err != nil {
		return err
	}

	publicKey, err := commandHandler.rsaProcessor.ReadPublicKey(publicKeyPath)
	if err != nil {
		return err
	}

	if err := commandHandler.rsaProcessor.EncryptFile(inputFile, outputFile, publicKey); err != nil {
		return err
	}

	commandHandler.logger.Info(fmt.Sprintf("Encrypted data path %s (%s)", outputFile, fileSize(outputFile)))
	return nil
}

// DecryptFileCmd decrypts a file of hexadecimal block lines
func (commandHandler *RSACommandHandler) DecryptFileCmd(cmd *cobra.Command, _ []string) error {
	inputFile, outputFile, err := filePaths(cmd)
	if err != nil {
		return err
	}
	privateKeyPath, err := requiredString(cmd, "private-key")
	if err != nil {
		return err
	}

	privateKey, err := commandHandler.rsaProcessor.ReadPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}

	if err := commandHandler.rsaProcessor.DecryptFile(inputFile, outputFile, privateKey); err != nil {
		return err
	}

	commandHandler.logger.Info(fmt.Sprintf("Decrypted data path %s (%s)", outputFile, fileSize(outputFile)))
	return nil
}

// InitRSACommands registers RSA-related commands. The handler is built once flags are parsed,
// so --config can point it at a settings file.
func InitRSACommands(rootCmd *cobra.Command) error {
	handler := &RSACommandHandler{}

	rootCmd.PersistentFlags().String(ConfigFlag, "", "Path to a YAML config file (RSA_VAULT_* environment variables override it)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		configured, err := NewRSACommandHandler(cfg)
		if err != nil {
			return fmt.Errorf("failed to create RSA command handler: %w", err)
		}
		*handler = *configured
		return nil
	}

	var generateKeysCmd = &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate an RSA key pair",
		RunE:  handler.run(handler.GenerateKeysCmd),
	}
	generateKeysCmd.Flags().Uint("bits", config.DefaultKeyBits, "Modulus size in bits (defaults to key_generation.bits)")
	generateKeysCmd.Flags().String("key-dir", ".", "Directory to store the RSA keys")
	rootCmd.AddCommand(generateKeysCmd)

	var encryptTextCmd = &cobra.Command{
		Use:   "encrypt-text",
		Short: "Encrypt text into hexadecimal blocks",
		RunE:  handler.run(handler.EncryptTextCmd),
	}
	encryptTextCmd.Flags().String("text", "", "Plaintext to encrypt (read from stdin when empty)")
	encryptTextCmd.Flags().String("public-key", "", "Path to RSA public key")
	rootCmd.AddCommand(encryptTextCmd)

	var decryptTextCmd = &cobra.Command{
		Use:   "decrypt-text",
		Short: "Decrypt hexadecimal blocks into text",
		RunE:  handler.run(handler.DecryptTextCmd),
	}
	decryptTextCmd.Flags().String("ciphertext", "", "Hexadecimal block lines (read from stdin when empty)")
	decryptTextCmd.Flags().String("private-key", "", "Path to RSA private key")
	rootCmd.AddCommand(decryptTextCmd)

	var encryptFileCmd = &cobra.Command{
		Use:   "encrypt-file",
		Short: "Encrypt a file using RSA",
		RunE:  handler.run(handler.EncryptFileCmd),
	}
	encryptFileCmd.Flags().String("input-file", "", "Path to input file which needs to be encrypted")
	encryptFileCmd.Flags().String("output-file", "", "Path to encrypted output file")
	encryptFileCmd.Flags().String("public-key", "", "Path to RSA public key")
	rootCmd.AddCommand(encryptFileCmd)

	var decryptFileCmd = &cobra.Command{
		Use:   "decrypt-file",
		Short: "Decrypt a file using RSA",
		RunE:  handler.run(handler.DecryptFileCmd),
	}
	decryptFileCmd.Flags().String("input-file", "", "Path to encrypted file")
	decryptFileCmd.Flags().String("output-file", "", "Path to decrypted output file")
	decryptFileCmd.Flags().String("private-key", "", "Path to RSA private key")
	rootCmd.AddCommand(decryptFileCmd)

	return nil
}

// run logs a failed command before handing the error back to cobra.
func (commandHandler *RSACommandHandler) run(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err != nil && commandHandler.logger != nil {
			commandHandler.logger.Error(fmt.Sprintf("%s: %v", cmd.Name(), err))
		}
		return err
	}
}

func textInput(cmd *cobra.Command, name string) ([]byte, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", name, err)
	}
	if value != "" {
		return []byte(value), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return []byte(strings.TrimSuffix(string(data), "\n")), nil
}

func filePaths(cmd *cobra.Command) (string, string, error) {
	inputFile, err := requiredString(cmd, "input-file")
	if err != nil {
		return "", "", err
	}
	outputFile, err := requiredString(cmd, "output-file")
	if err != nil {
		return "", "", err
	}
	return filepath.Clean(inputFile), filepath.Clean(outputFile), nil
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "size unknown"
	}
	return humanize.Bytes(uint64(info.Size()))
}
