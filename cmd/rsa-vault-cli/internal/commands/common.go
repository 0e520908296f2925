package commands

import (
	"fmt"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ConfigFlag names the persistent flag pointing at an optional YAML config file
const ConfigFlag = "config"

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

func loadConfig(cmd *cobra.Command) (*config.CLIConfig, error) {
	configPath, err := cmd.Flags().GetString(ConfigFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", ConfigFlag, err)
	}
	return config.InitializeCLIConfig(configPath)
}

func requiredString(cmd *cobra.Command, name string) (string, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("invalid %s flag: %w", name, err)
	}
	if value == "" {
		return "", fmt.Errorf("--%s is required", name)
	}
	return value, nil
}
