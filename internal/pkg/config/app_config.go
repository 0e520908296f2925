package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding file settings,
// e.g. RSA_VAULT_KEY_GENERATION_BITS or RSA_VAULT_LOGGER_LOG_LEVEL.
const EnvPrefix = "RSA_VAULT"

// RestConfig aggregates the settings of the REST API server
type RestConfig struct {
	Server        ServerSettings        `mapstructure:"server"`
	Database      DatabaseSettings      `mapstructure:"database"`
	Logger        LoggerSettings        `mapstructure:"logger"`
	KeyGeneration KeyGenerationSettings `mapstructure:"key_generation"`
}

// Validate checks every settings section of the REST configuration
func (c *RestConfig) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	return c.KeyGeneration.Validate()
}

// CLIConfig aggregates the settings of the command-line tool
type CLIConfig struct {
	Logger        LoggerSettings        `mapstructure:"logger"`
	KeyGeneration KeyGenerationSettings `mapstructure:"key_generation"`
}

// Validate checks every settings section of the CLI configuration
func (c *CLIConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	return c.KeyGeneration.Validate()
}

// InitializeRestConfig loads the REST configuration from the YAML file at path (optional when empty)
// and from RSA_VAULT_* environment variables.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// InitializeCLIConfig loads the CLI configuration from the YAML file at path (optional when empty)
// and from RSA_VAULT_* environment variables.
func InitializeCLIConfig(path string) (*CLIConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "rsa-vault.db")
	v.SetDefault("database.name", "rsa_vault")

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 0)
	v.SetDefault("logger.max_backups", 0)
	v.SetDefault("logger.max_age", 0)

	v.SetDefault("key_generation.bits", DefaultKeyBits)
	v.SetDefault("key_generation.max_attempts", DefaultMaxAttempts)
	v.SetDefault("key_generation.lossy_truncation", false)
}
