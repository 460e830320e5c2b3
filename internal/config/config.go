// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/MKhiriev/fmp-vault/models"
)

// GPG engine selection values for [GPG.Mode].
const (
	// EngineCLI shells out to an external gpg binary, delegating key
	// management and pinentry to the user's existing GnuPG setup.
	EngineCLI = "cli"
	// EngineKeyring runs OpenPGP in-process against exported keyring
	// files.
	EngineKeyring = "keyring"
)

// Config is the top-level configuration container for fmp. It aggregates
// all sub-configurations and is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
//
// All environment variables carry the additional FMP_ application prefix,
// e.g. FMP_PATHS_DATA_DIR.
type Config struct {
	// Paths holds the base directories the vault tree and the ledger
	// copies live under.
	Paths Paths `envPrefix:"PATHS_"`

	// GPG selects and tunes the OpenPGP engine backing all encryption.
	GPG GPG `envPrefix:"GPG_"`

	// TOTP tunes second-factor code generation and verification.
	TOTP TOTP `envPrefix:"TOTP_"`

	// Generator holds the default character-pool selection for random
	// password synthesis.
	Generator Generator `envPrefix:"GENERATOR_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the FMP_CONFIG environment variable or the
	// -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Paths holds the base directories all on-disk state derives from.
type Paths struct {
	// DataDir is the platform data directory the fmp/vaults tree and one
	// ledger copy live under. Defaults to the XDG data home on Unix.
	// Env: FMP_PATHS_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// ConfigDir is the platform config directory holding the second
	// ledger copy. Defaults to the OS user config directory.
	// Env: FMP_PATHS_CONFIG_DIR
	ConfigDir string `env:"CONFIG_DIR"`
}

// GPG selects the crypto engine and its backend-specific settings.
type GPG struct {
	// Mode chooses the engine: [EngineCLI] or [EngineKeyring].
	// Env: FMP_GPG_MODE
	Mode string `env:"MODE"`

	// Binary is the gpg executable invoked in cli mode.
	// Env: FMP_GPG_BINARY
	Binary string `env:"BINARY"`

	// ExtraArgs are additional arguments passed to every gpg invocation
	// in cli mode (e.g. "--homedir /path"). Space-separated in the
	// environment.
	// Env: FMP_GPG_EXTRA_ARGS
	ExtraArgs []string `env:"EXTRA_ARGS" envSeparator:" "`

	// KeyringPaths are the exported keyring files loaded in keyring
	// mode. Colon-separated in the environment.
	// Env: FMP_GPG_KEYRING_PATHS
	KeyringPaths []string `env:"KEYRING_PATHS" envSeparator:":"`
}

// TOTP tunes the second-factor subsystem. Zero values fall back to the
// enrollment defaults (issuer FMP, 6 digits, 30s period, skew 1).
type TOTP struct {
	// Issuer is the issuer tag embedded in enrollment URIs.
	// Env: FMP_TOTP_ISSUER
	Issuer string `env:"ISSUER"`

	// Digits is the code width, 6 to 8.
	// Env: FMP_TOTP_DIGITS
	Digits int `env:"DIGITS"`

	// Period is the time-step duration (e.g. "30s").
	// Env: FMP_TOTP_PERIOD
	Period time.Duration `env:"PERIOD"`

	// Skew is the number of time steps accepted either side of now.
	// Env: FMP_TOTP_SKEW
	Skew int `env:"SKEW"`
}

// Generator holds default password-generation settings, overridable per
// call by the front end.
type Generator struct {
	// Length is the default generated password length.
	// Env: FMP_GENERATOR_LENGTH
	Length int `env:"LENGTH"`

	// Include and Exclude are the default always-include /
	// always-exclude character sets.
	// Env: FMP_GENERATOR_INCLUDE / FMP_GENERATOR_EXCLUDE
	Include string `env:"INCLUDE"`
	Exclude string `env:"EXCLUDE"`
}

// GetConfig loads, merges, and validates the configuration from
// environment variables and the optional JSON file. Library consumers use
// this entry point; the fmp binary adds flags via [GetConfigWithFlags].
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withJSON().
		build()
}

// GetConfigWithFlags loads, merges, and validates the configuration from
// all sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags (args, excluding the program name)
//  3. JSON file (path resolved from sources 1 and 2)
func GetConfigWithFlags(args []string) (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}

// GeneratorOptions converts the configured generator defaults into the
// options value the generator consumes. Class selection always starts
// from the standard letters-digits-symbols default.
func (cfg *Config) GeneratorOptions() models.GeneratorOptions {
	opts := models.DefaultGeneratorOptions()
	if cfg.Generator.Length > 0 {
		opts.Length = cfg.Generator.Length
	}
	opts.Include = cfg.Generator.Include
	opts.Exclude = cfg.Generator.Exclude
	return opts
}

// applyDefaults fills platform defaults for fields no source set.
func (cfg *Config) applyDefaults() {
	if cfg.Paths.DataDir == "" {
		cfg.Paths.DataDir = defaultDataDir()
	}
	if cfg.Paths.ConfigDir == "" {
		cfg.Paths.ConfigDir = defaultConfigDir()
	}
	if cfg.GPG.Mode == "" {
		cfg.GPG.Mode = EngineCLI
	}
	if cfg.GPG.Binary == "" {
		cfg.GPG.Binary = "gpg"
	}
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support")
	case "windows":
		if dir := os.Getenv("AppData"); dir != "" {
			return dir
		}
		return home
	default:
		return filepath.Join(home, ".local", "share")
	}
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return dir
}
