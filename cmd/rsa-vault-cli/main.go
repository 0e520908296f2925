// Package main is the entry point for the rsa-vault-cli application.
// It initializes the root command, registers the RSA sub-commands and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/MGTheTrain/rsa-vault/cmd/rsa-vault-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "rsa-vault-cli",
		Short: "Textbook RSA command-line tool",
		Long: `rsa-vault-cli generates textbook RSA key pairs and encrypts or decrypts
text and files block by block. Ciphertext is written as one hexadecimal block per line.

This is an educational implementation without padding schemes and must not protect real secrets.`,
		SilenceUsage: true,
	}

	if err := commands.InitRSACommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
