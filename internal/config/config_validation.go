// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [Config] satisfies all invariants
// before it is used at startup. Runs after applyDefaults, so the engine
// mode and binary are always populated here.
//
// Returns nil if the configuration is valid, or a descriptive error
// wrapping one of the sentinel values in errors.go otherwise.
func (cfg *Config) validate() error {
	switch cfg.GPG.Mode {
	case EngineCLI:
	case EngineKeyring:
		if len(cfg.GPG.KeyringPaths) == 0 {
			return fmt.Errorf("%w: keyring mode requires at least one keyring path", ErrInvalidGPGConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidGPGConfigs, cfg.GPG.Mode)
	}

	if cfg.TOTP.Digits != 0 && (cfg.TOTP.Digits < 6 || cfg.TOTP.Digits > 8) {
		return fmt.Errorf("%w: digits must be 6-8, got %d", ErrInvalidTOTPConfigs, cfg.TOTP.Digits)
	}
	if cfg.TOTP.Period < 0 {
		return fmt.Errorf("%w: negative period", ErrInvalidTOTPConfigs)
	}
	if cfg.TOTP.Skew < 0 {
		return fmt.Errorf("%w: negative skew", ErrInvalidTOTPConfigs)
	}

	if cfg.Generator.Length < 0 {
		return fmt.Errorf("%w: negative length", ErrInvalidGeneratorConfigs)
	}

	return nil
}
