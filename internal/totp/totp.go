// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package totp implements the per-vault second factor: shared-secret
// provisioning, RFC 4226/6238 code verification, the redundant
// "2FA required" ledger, and the gate canary used to front-load the
// external engine's passphrase prompt.
package totp

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/MKhiriev/fmp-vault/internal/gpg"
	"github.com/MKhiriev/fmp-vault/internal/logger"
	"github.com/MKhiriev/fmp-vault/internal/secmem"
	"github.com/MKhiriev/fmp-vault/internal/vault"
	"github.com/MKhiriev/fmp-vault/models"
)

// ErrNotEnabled is returned when a code is verified against a vault that
// has no stored TOTP secret.
var ErrNotEnabled = errors.New("2FA is not enabled for this vault")

// secretLen is the size of the generated shared secret: 160 bits, the
// RFC 4226 recommended minimum and the full HMAC-SHA1 block the dynamic
// truncation indexes into.
const secretLen = 20

// Params tunes the subsystem. Zero values fall back to the enrollment
// defaults every authenticator app understands: issuer FMP, 6 digits,
// 30-second period, ±1 step skew tolerance.
type Params struct {
	Issuer string
	Digits int
	Period time.Duration
	Skew   int

	// Now substitutes the clock in tests. Defaults to time.Now.
	Now func() time.Time
}

func (p *Params) applyDefaults() {
	if p.Issuer == "" {
		p.Issuer = "FMP"
	}
	if p.Digits == 0 {
		p.Digits = 6
	}
	if p.Period == 0 {
		p.Period = 30 * time.Second
	}
	if p.Skew == 0 {
		p.Skew = 1
	}
	if p.Now == nil {
		p.Now = time.Now
	}
}

// Subsystem binds the vault tree, the crypto engine and the requirement
// ledger into the per-vault 2FA state machine.
type Subsystem struct {
	dataDir string
	engine  gpg.Engine
	ledger  Ledger
	params  Params
	logger  *logger.Logger
}

// NewSubsystem constructs the TOTP subsystem over the vault tree rooted
// at dataDir.
func NewSubsystem(dataDir string, engine gpg.Engine, ledger Ledger, params Params, log *logger.Logger) *Subsystem {
	params.applyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	return &Subsystem{dataDir: dataDir, engine: engine, ledger: ledger, params: params, logger: log}
}

// Enable turns on 2FA for a vault: generates a 160-bit random secret,
// stores it encrypted at totp.gpg, makes sure the gate canary exists, and
// records the vault in both ledger copies.
//
// The returned enrollment (Base32 secret plus otpauth:// URI) is a
// one-time disclosure for the authenticator app; the caller must not
// persist it anywhere else.
func (s *Subsystem) Enable(ctx context.Context, vaultName string) (models.Enrollment, error) {
	loc := vault.NewLocations(s.dataDir, vaultName, "")
	if err := loc.VaultExists(); err != nil {
		return models.Enrollment{}, err
	}

	raw := make([]byte, secretLen)
	if _, err := rand.Read(raw); err != nil {
		return models.Enrollment{}, fmt.Errorf("generate TOTP secret: %w", err)
	}
	secret := secmem.Take(raw)
	defer secret.Destroy()

	recipient, err := vault.ReadRecipient(loc)
	if err != nil {
		return models.Enrollment{}, err
	}
	ciphertext, err := s.engine.Encrypt(ctx, recipient, secret.Bytes())
	if err != nil {
		return models.Enrollment{}, fmt.Errorf("encrypt TOTP secret for %q: %w", recipient, err)
	}
	if err := writeFileAtomic(loc.TOTP, ciphertext); err != nil {
		return models.Enrollment{}, err
	}

	if err := s.EnsureGate(ctx, vaultName); err != nil {
		return models.Enrollment{}, err
	}
	if err := s.ledger.Add(vaultName); err != nil {
		return models.Enrollment{}, fmt.Errorf("record 2FA requirement for vault %q: %w", vaultName, err)
	}

	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret.Bytes())
	label := s.params.Issuer + ":" + vaultName
	uri := fmt.Sprintf(
		"otpauth://totp/%s?secret=%s&issuer=%s&period=%d&digits=%d&algorithm=SHA1",
		url.QueryEscape(label),
		encoded,
		url.QueryEscape(s.params.Issuer),
		int(s.params.Period/time.Second),
		s.params.Digits,
	)

	s.logger.Info().Str("vault", vaultName).Msg("2FA enabled")
	return models.Enrollment{Secret: encoded, URI: uri}, nil
}

// Disable turns off 2FA: removes totp.gpg if present, then
// unconditionally purges the vault from both ledger copies. The purge
// runs even when the secret file was already gone, so a previous partial
// failure cannot leave the requirement stuck.
func (s *Subsystem) Disable(vaultName string) error {
	loc := vault.NewLocations(s.dataDir, vaultName, "")
	if _, err := os.Stat(loc.TOTP); err == nil {
		if err := os.Remove(loc.TOTP); err != nil {
			return fmt.Errorf("remove TOTP secret %s: %w", loc.TOTP, err)
		}
	}
	if err := s.ledger.Remove(vaultName); err != nil {
		return fmt.Errorf("clear 2FA requirement for vault %q: %w", vaultName, err)
	}
	s.logger.Info().Str("vault", vaultName).Msg("2FA disabled")
	return nil
}

// Verify checks a user-provided code against the vault's stored secret,
// accepting the current 30-second step and one step either side.
//
// Input is normalized by stripping all whitespace; anything that is not
// 6–8 ASCII digits is rejected before the stored secret is decrypted.
// The decrypted secret is zeroized regardless of match outcome.
func (s *Subsystem) Verify(ctx context.Context, vaultName, code string) (bool, error) {
	code = stripSpace(code)
	if !isCandidateCode(code) {
		return false, nil
	}

	secret, err := s.decryptSecret(ctx, vaultName)
	if err != nil {
		return false, err
	}
	defer secret.Destroy()

	step := int64(s.params.Period / time.Second)
	counter := s.params.Now().Unix() / step

	for skew := -s.params.Skew; skew <= s.params.Skew; skew++ {
		candidate := fmt.Sprintf("%0*d", s.params.Digits, HOTP(secret.Bytes(), uint64(counter+int64(skew)), s.params.Digits))
		if candidate == code {
			return true, nil
		}
	}
	return false, nil
}

// Enabled reports whether the vault currently has an encrypted secret on
// disk. Presence is a signal, not the source of truth for the
// requirement; see IsRequired.
func (s *Subsystem) Enabled(vaultName string) bool {
	loc := vault.NewLocations(s.dataDir, vaultName, "")
	_, err := os.Stat(loc.TOTP)
	return err == nil
}

// IsRequired reports whether the vault demands a second factor: true
// when the vault is in either ledger copy, or when totp.gpg exists, in
// which case the vault is retroactively re-added to the ledger as a
// self-healing step. Once observed, the requirement persists until an
// explicit Disable; deleting the secret file alone cannot drop it.
func (s *Subsystem) IsRequired(vaultName string) bool {
	if s.ledger.Contains(vaultName) {
		return true
	}
	if s.Enabled(vaultName) {
		if err := s.ledger.Add(vaultName); err != nil {
			s.logger.Warn().Err(err).Str("vault", vaultName).Msg("failed to self-heal 2FA ledger")
		}
		return true
	}
	return false
}

// EnsureGate idempotently creates the tiny encrypted canary file. The
// first engine call of a session can then be a cheap gate decrypt that
// forces any passphrase prompt before real account data is touched. A
// UX warm-up, not a security boundary.
func (s *Subsystem) EnsureGate(ctx context.Context, vaultName string) error {
	loc := vault.NewLocations(s.dataDir, vaultName, "")
	if _, err := os.Stat(loc.Gate); err == nil {
		return nil
	}

	recipient, err := vault.ReadRecipient(loc)
	if err != nil {
		return err
	}
	ciphertext, err := s.engine.Encrypt(ctx, recipient, []byte("gate"))
	if err != nil {
		return fmt.Errorf("encrypt gate file for %q: %w", recipient, err)
	}
	return writeFileAtomic(loc.Gate, ciphertext)
}

// WarmUp decrypts the vault's gate file, triggering the external
// engine's passphrase prompt before any real work begins.
func (s *Subsystem) WarmUp(ctx context.Context, vaultName string) error {
	loc := vault.NewLocations(s.dataDir, vaultName, "")
	encrypted, err := os.ReadFile(loc.Gate)
	if err != nil {
		return fmt.Errorf("read gate file %s: %w", loc.Gate, err)
	}
	if _, err := s.engine.Decrypt(ctx, encrypted); err != nil {
		return fmt.Errorf("warm-up decrypt: %w", err)
	}
	return nil
}

// decryptSecret loads and decrypts totp.gpg into a locked buffer owned
// by the caller.
func (s *Subsystem) decryptSecret(ctx context.Context, vaultName string) (*secmem.Secret, error) {
	loc := vault.NewLocations(s.dataDir, vaultName, "")
	encrypted, err := os.ReadFile(loc.TOTP)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("vault %q: %w", vaultName, ErrNotEnabled)
		}
		return nil, fmt.Errorf("read TOTP secret %s: %w", loc.TOTP, err)
	}

	plaintext, err := s.engine.Decrypt(ctx, encrypted)
	if err != nil {
		return nil, fmt.Errorf("TOTP secret for vault %q: %w", vaultName, err)
	}
	return secmem.Take(plaintext), nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// isCandidateCode accepts only 6–8 ASCII digits. Everything else is
// rejected without touching the secret.
func isCandidateCode(code string) bool {
	if len(code) < 6 || len(code) > 8 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// writeFileAtomic stages data to a uniquely named 0600 temp file next to
// path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
