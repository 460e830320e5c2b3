// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault implements the encrypted storage layer: the on-disk
// layout of vaults and accounts, the envelope encryption of one account's
// username/password record, and vault/account lifecycle operations.
//
// Layout under the base data directory:
//
//	fmp/vaults/<vault>/recipient        plaintext recipient identifier
//	fmp/vaults/<vault>/totp.gpg         encrypted TOTP shared secret
//	fmp/vaults/<vault>/gate.gpg         encrypted unlock canary
//	fmp/vaults/<vault>/<account>/data.gpg
//	fmp/backups/
package vault

import (
	"fmt"
	"os"
	"path/filepath"
)

// Locations is the pure mapping from (vault name, account name) to the
// full set of paths a vault and account can have. It performs no I/O
// beyond the explicit directory/file creation helpers.
type Locations struct {
	FMP       string
	Vault     string
	Backup    string
	Account   string
	Recipient string
	Data      string
	TOTP      string
	Gate      string
}

// NewLocations computes the path set for the given vault and account under
// dataDir. Callers that need only vault-scope paths pass an empty account
// name.
//
// An empty vault name is a programmer error, not user input (every entry
// point validates names before path construction), so it panics rather
// than returning an error.
func NewLocations(dataDir, vaultName, accountName string) Locations {
	if vaultName == "" {
		panic("vault: empty vault name reached path construction")
	}

	fmp := filepath.Join(dataDir, "fmp")
	vaultPath := filepath.Join(fmp, "vaults", vaultName)
	account := filepath.Join(vaultPath, accountName)

	return Locations{
		FMP:       fmp,
		Vault:     vaultPath,
		Backup:    filepath.Join(fmp, "backups"),
		Account:   account,
		Recipient: filepath.Join(vaultPath, "recipient"),
		Data:      filepath.Join(account, "data.gpg"),
		TOTP:      filepath.Join(vaultPath, "totp.gpg"),
		Gate:      filepath.Join(vaultPath, "gate.gpg"),
	}
}

// InitializeVault creates the vault directory (0700) and the recipient
// file (0600, created empty, left untouched if it already exists).
// Idempotent: calling it on an existing vault is not an error.
func (l Locations) InitializeVault() error {
	if err := os.MkdirAll(l.Vault, 0o700); err != nil {
		return fmt.Errorf("create vault directory %s: %w", l.Vault, err)
	}
	// MkdirAll honors umask; enforce the mode explicitly.
	if err := os.Chmod(l.Vault, 0o700); err != nil {
		return fmt.Errorf("set vault directory mode %s: %w", l.Vault, err)
	}

	f, err := os.OpenFile(l.Recipient, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create recipient file %s: %w", l.Recipient, err)
	}
	return f.Close()
}

// CreateAccountDirectory creates the account directory (0700).
// Idempotent: an already-existing directory is not an error.
func (l Locations) CreateAccountDirectory() error {
	if err := os.MkdirAll(l.Account, 0o700); err != nil {
		return fmt.Errorf("create account directory %s: %w", l.Account, err)
	}
	if err := os.Chmod(l.Account, 0o700); err != nil {
		return fmt.Errorf("set account directory mode %s: %w", l.Account, err)
	}
	return nil
}

// VaultExists reports whether the vault directory exists, returning a
// typed not-found error with a remediation hint otherwise.
func (l Locations) VaultExists() error {
	if _, err := os.Stat(l.Vault); err != nil {
		return fmt.Errorf("vault %s: %w (check for typos or create it)", l.Vault, ErrVaultNotFound)
	}
	return nil
}

// AccountExists reports whether the account directory exists, returning a
// typed not-found error with a remediation hint otherwise.
func (l Locations) AccountExists() error {
	if _, err := os.Stat(l.Account); err != nil {
		return fmt.Errorf("account %s: %w (check for typos or create it)", l.Account, ErrAccountNotFound)
	}
	return nil
}
