// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gpg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/MKhiriev/fmp-vault/internal/logger"
)

// CLIEngine implements [Engine] by invoking the gpg binary as a
// subprocess. Key generation, keyring management and passphrase pinentry
// all stay inside gpg; this type only moves bytes through stdin/stdout.
//
// A decrypt call can block on an interactive pinentry prompt until the
// user answers it or ctx is cancelled (which kills the subprocess).
type CLIEngine struct {
	binary    string
	extraArgs []string
	logger    *logger.Logger
}

// NewCLIEngine constructs a CLIEngine. binary is the gpg executable name
// or path ("gpg" when empty); extraArgs are prepended to every invocation
// and typically carry --homedir for test or multi-keyring setups.
func NewCLIEngine(binary string, extraArgs []string, log *logger.Logger) *CLIEngine {
	if binary == "" {
		binary = "gpg"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CLIEngine{binary: binary, extraArgs: extraArgs, logger: log}
}

// Encrypt implements [Engine] via `gpg --batch --yes --encrypt`.
func (e *CLIEngine) Encrypt(ctx context.Context, recipient string, plaintext []byte) ([]byte, error) {
	args := append(append([]string{}, e.extraArgs...),
		"--batch", "--yes", "--encrypt", "--recipient", recipient, "--output", "-")

	out, stderr, err := e.run(ctx, args, plaintext)
	if err != nil {
		if isNoPublicKey(stderr) {
			return nil, fmt.Errorf("recipient %q: %w", recipient, ErrRecipientNotFound)
		}
		e.logger.Error().Err(err).Str("recipient", recipient).Msg("gpg encrypt failed")
		return nil, fmt.Errorf("%w for recipient %q: %s", ErrEncryptFailed, recipient, firstLine(stderr))
	}
	return out, nil
}

// Decrypt implements [Engine] via `gpg --batch --decrypt`. All failure
// modes collapse into ErrDecryptFailed; gpg's stderr is logged but not
// propagated, since it can reference key ids.
func (e *CLIEngine) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := append(append([]string{}, e.extraArgs...), "--batch", "--decrypt")

	out, stderr, err := e.run(ctx, args, ciphertext)
	if err != nil {
		e.logger.Error().Err(err).Str("stderr", firstLine(stderr)).Msg("gpg decrypt failed")
		return nil, ErrDecryptFailed
	}
	return out, nil
}

func (e *CLIEngine) run(ctx context.Context, args []string, stdin []byte) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdin = bytes.NewReader(stdin)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// isNoPublicKey matches the diagnostics gpg emits when a recipient has no
// usable key. Message text varies across gpg versions and locales, so the
// match is deliberately loose.
func isNoPublicKey(stderr []byte) bool {
	s := strings.ToLower(string(stderr))
	return strings.Contains(s, "no public key") ||
		strings.Contains(s, "not found") ||
		strings.Contains(s, "skipped: no") ||
		strings.Contains(s, "unusable public key")
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
