// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// Config is the top-level configuration container shared by the guactoken
// CLI and the tokend decode service. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// App holds the shared token settings: the secret key and the URLs the
	// CLI embeds tokens into or verifies them against.
	App App `envPrefix:"GUAC_"`

	// Server holds network settings for the tokend decode service.
	Server Server `envPrefix:"TOKEND_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the GUAC_CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"GUAC_CONFIG"`
}

// App holds token-level configuration shared by both binaries.
type App struct {
	// SecretKey is the raw AES key material shared with the gateway.
	// Must be exactly 32 ASCII characters; validated before any cipher use.
	// Env: GUAC_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// FrontendURL is the base URL tokens are appended to when the CLI is
	// asked for a full connection URL (e.g. "http://localhost:3000").
	// Env: GUAC_FRONTEND_URL
	FrontendURL string `env:"FRONTEND_URL"`

	// VerifyURL is the base URL of a running tokend instance used by the
	// CLI's -verify-url mode. Empty disables verification.
	// Env: GUAC_VERIFY_URL
	VerifyURL string `env:"VERIFY_URL"`
}

// Server holds network and timeout settings for the tokend HTTP server.
type Server struct {
	// Address is the TCP address tokend listens on, in "host:port" format.
	// Env: TOKEND_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request (e.g. "30s", "1m").
	// Also used as the outbound timeout by the CLI's verify client.
	// Env: TOKEND_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Default values applied after all sources are merged. The secret key default
// matches the gateway's sample deployment and exists so the tool works out of
// the box against it; production deployments must override it.
const (
	DefaultSecretKey      = "MySuperSecretKeyForParamsToken12"
	DefaultFrontendURL    = "http://localhost:3000"
	DefaultServerAddress  = "localhost:8080"
	DefaultRequestTimeout = 15 * time.Second
)

// GetServerConfig loads, merges, and validates the tokend configuration from
// all available sources in the following priority order (first source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *Config or an error if any source fails to load
// or the final config fails validation.
func GetServerConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

// GetClientConfig merges flagCfg (the CLI's already-parsed flag values) with
// environment variables and the optional JSON file, applies defaults, and
// validates the result. The CLI owns its own flag set, so unlike
// [GetServerConfig] this function never touches the flag package.
func GetClientConfig(flagCfg *Config) (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withConfig(flagCfg).
		withJSON().
		build()
}

// applyDefaults fills any still-empty field with its default value.
func (cfg *Config) applyDefaults() {
	if cfg.App.SecretKey == "" {
		cfg.App.SecretKey = DefaultSecretKey
	}
	if cfg.App.FrontendURL == "" {
		cfg.App.FrontendURL = DefaultFrontendURL
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultServerAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
}

// validate checks that the final merged [Config] satisfies all invariants
// before any cipher work happens.
func (cfg *Config) validate() error {
	if len(cfg.App.SecretKey) != secretKeyLength {
		return ErrInvalidSecretKey
	}

	return nil
}

// secretKeyLength matches token.KeyLength; duplicated here so the config
// package does not depend on the codec.
const secretKeyLength = 32
