package service

import (
	"context"

	"github.com/MKhiriev/fmp-vault/internal/secmem"
	"github.com/MKhiriev/fmp-vault/models"
)

// VaultService manages vault lifecycle on the local tree.
type VaultService interface {
	CreateVault(ctx context.Context, vaultName, recipient string) error
	DeleteVault(vaultName string) error
	RenameVault(oldName, newName string) error
	ListVaults() ([]string, error)
}

// AccountService manages the username/password records inside one vault.
// Every UserPass it returns owns a locked password buffer the caller must
// Destroy when done.
type AccountService interface {
	AddAccount(ctx context.Context, vaultName, accountName string, userpass models.UserPass) error
	GetAccount(ctx context.Context, vaultName, accountName string) (models.UserPass, error)
	ChangeUsername(ctx context.Context, vaultName, accountName, newUsername string) error
	ChangePassword(ctx context.Context, vaultName, accountName string, newPassword *secmem.Secret) error
	DeleteAccount(vaultName, accountName string) error
	RenameAccount(vaultName, oldName, newName string) error
	ListAccounts(vaultName string) ([]string, error)

	// CopyPassword decrypts the account and places the password on the
	// system clipboard. The caller owns clearing the clipboard afterwards.
	CopyPassword(ctx context.Context, vaultName, accountName string) error
}

// TOTPService exposes the per-vault second factor to the front end,
// combining durable state (secret file, requirement ledger) with the
// in-process verification session.
type TOTPService interface {
	Enable(ctx context.Context, vaultName string) (models.Enrollment, error)
	Disable(vaultName string) error

	// Verify checks the code and, on success, marks the vault verified
	// for the session window.
	Verify(ctx context.Context, vaultName, code string) (bool, error)

	IsRequired(vaultName string) bool
	IsVerified(vaultName string) bool

	// WarmUp triggers the engine's passphrase prompt via the gate file
	// before real account data is touched.
	WarmUp(ctx context.Context, vaultName string) error
}

// PasswordService exposes the strength estimator and the random
// generator.
type PasswordService interface {
	Estimate(password string) models.Strength
	Generate(opts models.GeneratorOptions) (string, error)
	GenerateDefault() (string, error)
}
