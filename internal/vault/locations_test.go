// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fmp-vault/internal/vault"
)

func TestNewLocations_Layout(t *testing.T) {
	loc := vault.NewLocations("/data", "work", "email")

	assert.Equal(t, filepath.Join("/data", "fmp"), loc.FMP)
	assert.Equal(t, filepath.Join("/data", "fmp", "vaults", "work"), loc.Vault)
	assert.Equal(t, filepath.Join("/data", "fmp", "backups"), loc.Backup)
	assert.Equal(t, filepath.Join("/data", "fmp", "vaults", "work", "email"), loc.Account)
	assert.Equal(t, filepath.Join("/data", "fmp", "vaults", "work", "recipient"), loc.Recipient)
	assert.Equal(t, filepath.Join("/data", "fmp", "vaults", "work", "email", "data.gpg"), loc.Data)
	assert.Equal(t, filepath.Join("/data", "fmp", "vaults", "work", "totp.gpg"), loc.TOTP)
	assert.Equal(t, filepath.Join("/data", "fmp", "vaults", "work", "gate.gpg"), loc.Gate)
}

func TestNewLocations_VaultScope(t *testing.T) {
	// Empty account name yields vault-scope paths.
	loc := vault.NewLocations("/data", "work", "")
	assert.Equal(t, loc.Vault, loc.Account)
}

func TestNewLocations_EmptyVaultNamePanics(t *testing.T) {
	assert.Panics(t, func() {
		vault.NewLocations("/data", "", "email")
	})
}

func TestInitializeVault_CreatesLayout(t *testing.T) {
	dir := t.TempDir()
	loc := vault.NewLocations(dir, "work", "")

	require.NoError(t, loc.InitializeVault())

	vaultInfo, err := os.Stat(loc.Vault)
	require.NoError(t, err)
	assert.True(t, vaultInfo.IsDir())
	assert.Equal(t, os.FileMode(0o700), vaultInfo.Mode().Perm())

	recipientInfo, err := os.Stat(loc.Recipient)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), recipientInfo.Mode().Perm())
}

func TestInitializeVault_Idempotent(t *testing.T) {
	dir := t.TempDir()
	loc := vault.NewLocations(dir, "work", "")

	require.NoError(t, loc.InitializeVault())
	require.NoError(t, os.WriteFile(loc.Recipient, []byte("alice@example.com"), 0o600))

	// A second initialization must not truncate the recipient file.
	require.NoError(t, loc.InitializeVault())
	content, err := os.ReadFile(loc.Recipient)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", string(content))
}

func TestCreateAccountDirectory(t *testing.T) {
	dir := t.TempDir()
	loc := vault.NewLocations(dir, "work", "email")

	require.NoError(t, loc.InitializeVault())
	require.NoError(t, loc.CreateAccountDirectory())
	require.NoError(t, loc.CreateAccountDirectory()) // idempotent

	info, err := os.Stat(loc.Account)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestVaultExists(t *testing.T) {
	dir := t.TempDir()
	loc := vault.NewLocations(dir, "work", "")

	err := loc.VaultExists()
	require.Error(t, err)
	assert.True(t, errors.Is(err, vault.ErrVaultNotFound))
	assert.Contains(t, err.Error(), "check for typos")

	require.NoError(t, loc.InitializeVault())
	assert.NoError(t, loc.VaultExists())
}

func TestAccountExists(t *testing.T) {
	dir := t.TempDir()
	loc := vault.NewLocations(dir, "work", "email")
	require.NoError(t, loc.InitializeVault())

	err := loc.AccountExists()
	require.Error(t, err)
	assert.True(t, errors.Is(err, vault.ErrAccountNotFound))

	require.NoError(t, loc.CreateAccountDirectory())
	assert.NoError(t, loc.AccountExists())
}
