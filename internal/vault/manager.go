// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/fmp-vault/internal/gpg"
	"github.com/MKhiriev/fmp-vault/internal/logger"
)

// Manager performs vault- and account-lifecycle operations on the tree
// rooted at one base data directory.
type Manager struct {
	dataDir string
	engine  gpg.Engine
	logger  *logger.Logger
}

// NewManager constructs a Manager over dataDir using the given engine.
func NewManager(dataDir string, engine gpg.Engine, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{dataDir: dataDir, engine: engine, logger: log}
}

// Locations computes the path set for a (vault, account) pair. Pass an
// empty account name for vault-scope paths.
func (m *Manager) Locations(vaultName, accountName string) Locations {
	return NewLocations(m.dataDir, vaultName, accountName)
}

// Store returns a Store bound to one account of one vault.
func (m *Manager) Store(vaultName, accountName string) *Store {
	return NewStore(m.engine, m.Locations(vaultName, accountName), m.logger)
}

// CreateVault initializes the vault layout, records the recipient
// identifier, and proves the recipient resolves to a usable key by
// encrypting the gate canary. If the probe fails the half-created vault
// is removed and ErrRecipientInvalid (or the engine error) is returned:
// a vault whose recipient cannot encrypt is useless for every write path.
func (m *Manager) CreateVault(ctx context.Context, vaultName, recipient string) error {
	if vaultName == "" {
		return fmt.Errorf("%w: vault name must not be empty", ErrVaultNotFound)
	}
	loc := m.Locations(vaultName, "")

	if err := loc.InitializeVault(); err != nil {
		return err
	}
	if err := os.WriteFile(loc.Recipient, []byte(recipient), 0o600); err != nil {
		return fmt.Errorf("write recipient file %s: %w", loc.Recipient, err)
	}

	if err := m.writeGate(ctx, loc, recipient); err != nil {
		// Roll back: a vault with an unusable recipient must not linger.
		os.RemoveAll(loc.Vault)
		if errors.Is(err, gpg.ErrRecipientNotFound) {
			return fmt.Errorf("recipient %q: %w", recipient, ErrRecipientInvalid)
		}
		return err
	}

	m.logger.Info().Str("vault", vaultName).Str("recipient", recipient).Msg("vault created")
	return nil
}

// DeleteVault removes the vault directory recursively.
func (m *Manager) DeleteVault(vaultName string) error {
	loc := m.Locations(vaultName, "")
	if err := loc.VaultExists(); err != nil {
		return err
	}
	if err := os.RemoveAll(loc.Vault); err != nil {
		return fmt.Errorf("delete vault %s: %w", loc.Vault, err)
	}
	m.logger.Info().Str("vault", vaultName).Msg("vault deleted")
	return nil
}

// RenameVault renames a vault directory in place. The TOTP ledger is not
// rewritten; a renamed vault that required 2FA is re-added to the ledger
// under its new name the first time its totp.gpg is observed.
func (m *Manager) RenameVault(oldName, newName string) error {
	oldLoc := m.Locations(oldName, "")
	if err := oldLoc.VaultExists(); err != nil {
		return err
	}
	newLoc := m.Locations(newName, "")
	if err := os.Rename(oldLoc.Vault, newLoc.Vault); err != nil {
		return fmt.Errorf("rename vault %s to %s: %w", oldLoc.Vault, newLoc.Vault, err)
	}
	return nil
}

// ListVaults returns the names of all vault directories, sorted. A
// missing vaults root means no vault was ever created and yields an
// empty list, not an error.
func (m *Manager) ListVaults() ([]string, error) {
	return readDirectoryNames(filepath.Join(m.dataDir, "fmp", "vaults"))
}

// ListAccounts returns the names of all account directories in a vault,
// sorted.
func (m *Manager) ListAccounts(vaultName string) ([]string, error) {
	loc := m.Locations(vaultName, "")
	if err := loc.VaultExists(); err != nil {
		return nil, err
	}
	return readDirectoryNames(loc.Vault)
}

// DeleteAccount removes one account directory recursively.
func (m *Manager) DeleteAccount(vaultName, accountName string) error {
	loc := m.Locations(vaultName, accountName)
	if err := loc.AccountExists(); err != nil {
		return err
	}
	if err := os.RemoveAll(loc.Account); err != nil {
		return fmt.Errorf("delete account %s: %w", loc.Account, err)
	}
	m.logger.Info().Str("vault", vaultName).Str("account", accountName).Msg("account deleted")
	return nil
}

// RenameAccount renames an account directory within its vault using a
// true rename, so the envelope never exists at two paths at once.
func (m *Manager) RenameAccount(vaultName, oldName, newName string) error {
	oldLoc := m.Locations(vaultName, oldName)
	if err := oldLoc.AccountExists(); err != nil {
		return err
	}
	newLoc := m.Locations(vaultName, newName)
	if err := os.Rename(oldLoc.Account, newLoc.Account); err != nil {
		return fmt.Errorf("rename account %s to %s: %w", oldLoc.Account, newLoc.Account, err)
	}
	return nil
}

// writeGate encrypts the tiny canary blob and writes gate.gpg (0600) if
// it does not already exist.
func (m *Manager) writeGate(ctx context.Context, loc Locations, recipient string) error {
	if _, err := os.Stat(loc.Gate); err == nil {
		return nil
	}
	ciphertext, err := m.engine.Encrypt(ctx, recipient, []byte("gate"))
	if err != nil {
		return err
	}
	if err := os.WriteFile(loc.Gate, ciphertext, 0o600); err != nil {
		return fmt.Errorf("write gate file %s: %w", loc.Gate, err)
	}
	return nil
}

// readDirectoryNames lists the sub-directory names of dir, sorted.
// Plain files (recipient, totp.gpg, gate.gpg) are skipped.
func readDirectoryNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
