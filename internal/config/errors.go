package config

import "errors"

// Validation errors returned by [Config.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidGPGConfigs indicates invalid crypto engine settings (for
	// example, an unknown mode, or keyring mode without keyring paths).
	ErrInvalidGPGConfigs = errors.New("invalid gpg configuration")
	// ErrInvalidTOTPConfigs indicates invalid second-factor settings
	// (for example, a code width outside 6-8 or a negative skew).
	ErrInvalidTOTPConfigs = errors.New("invalid totp configuration")
	// ErrInvalidGeneratorConfigs indicates invalid password generator
	// defaults (for example, a negative length).
	ErrInvalidGeneratorConfigs = errors.New("invalid generator configuration")
)
