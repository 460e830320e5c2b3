package config

import (
	"flag"
	"strings"
	"time"
)

// ParseFlags parses configuration flags from args (excluding the program
// name) into a partial [Config].
//
// Flags:
//
//	-data-dir base data directory holding the vault tree
//	-config-dir base config directory holding the second ledger copy
//	-gpg-mode crypto engine selection: cli or keyring
//	-gpg-binary gpg executable used in cli mode
//	-gpg-args extra space-separated gpg arguments (cli mode)
//	-keyring colon-separated exported keyring files (keyring mode)
//	-c/-config json file path with configs
//	-totp-issuer issuer tag for enrollment URIs
//	-totp-digits code width (6-8)
//	-totp-period time-step duration (e.g., "30s")
//	-totp-skew accepted steps either side of now
//	-length default generated password length
func ParseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("fmp", flag.ContinueOnError)

	var dataDir, configDir string
	var gpgMode, gpgBinary, gpgArgs, keyringPaths string
	var jsonConfigPath string
	var totpIssuer string
	var totpDigits, totpSkew int
	var totpPeriod time.Duration
	var generatorLength int

	fs.StringVar(&dataDir, "data-dir", "", "Base data directory")
	fs.StringVar(&configDir, "config-dir", "", "Base config directory")
	fs.StringVar(&gpgMode, "gpg-mode", "", "Crypto engine: cli or keyring")
	fs.StringVar(&gpgBinary, "gpg-binary", "", "GPG executable (cli mode)")
	fs.StringVar(&gpgArgs, "gpg-args", "", "Extra gpg arguments, space-separated (cli mode)")
	fs.StringVar(&keyringPaths, "keyring", "", "Exported keyring files, colon-separated (keyring mode)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&totpIssuer, "totp-issuer", "", "TOTP issuer tag")
	fs.IntVar(&totpDigits, "totp-digits", 0, "TOTP code width (6-8)")
	fs.DurationVar(&totpPeriod, "totp-period", 0, "TOTP time-step duration (e.g., 30s)")
	fs.IntVar(&totpSkew, "totp-skew", 0, "TOTP accepted step skew")
	fs.IntVar(&generatorLength, "length", 0, "Default generated password length")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &Config{
		Paths: Paths{
			DataDir:   dataDir,
			ConfigDir: configDir,
		},
		GPG: GPG{
			Mode:         gpgMode,
			Binary:       gpgBinary,
			ExtraArgs:    splitNonEmpty(gpgArgs, " "),
			KeyringPaths: splitNonEmpty(keyringPaths, ":"),
		},
		TOTP: TOTP{
			Issuer: totpIssuer,
			Digits: totpDigits,
			Period: totpPeriod,
			Skew:   totpSkew,
		},
		Generator: Generator{
			Length: generatorLength,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}

	var parts []string
	for _, part := range strings.Split(s, sep) {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
