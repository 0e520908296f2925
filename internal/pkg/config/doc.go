// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file and RSA_VAULT_* environment variables,
// validated, and handed to the logger, the key generator, the database layer
// and the HTTP server.
package config
