package service

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/fmp-vault/internal/logger"
	"github.com/MKhiriev/fmp-vault/internal/secmem"
	"github.com/MKhiriev/fmp-vault/internal/vault"
	"github.com/MKhiriev/fmp-vault/models"
)

type accountService struct {
	manager *vault.Manager

	logger *logger.Logger
}

// NewAccountService returns the account record service over manager.
func NewAccountService(manager *vault.Manager, log *logger.Logger) AccountService {
	if log == nil {
		log = logger.Nop()
	}
	return &accountService{manager: manager, logger: log}
}

func (a *accountService) AddAccount(ctx context.Context, vaultName, accountName string, userpass models.UserPass) error {
	loc := a.manager.Locations(vaultName, accountName)
	if err := loc.VaultExists(); err != nil {
		return err
	}
	if err := loc.CreateAccountDirectory(); err != nil {
		return err
	}
	return a.manager.Store(vaultName, accountName).EncryptToFile(ctx, userpass)
}

func (a *accountService) GetAccount(ctx context.Context, vaultName, accountName string) (models.UserPass, error) {
	return a.manager.Store(vaultName, accountName).DecryptFromFile(ctx)
}

func (a *accountService) ChangeUsername(ctx context.Context, vaultName, accountName, newUsername string) error {
	return a.manager.Store(vaultName, accountName).ChangeUsername(ctx, newUsername)
}

func (a *accountService) ChangePassword(ctx context.Context, vaultName, accountName string, newPassword *secmem.Secret) error {
	return a.manager.Store(vaultName, accountName).ChangePassword(ctx, newPassword)
}

func (a *accountService) DeleteAccount(vaultName, accountName string) error {
	return a.manager.DeleteAccount(vaultName, accountName)
}

func (a *accountService) RenameAccount(vaultName, oldName, newName string) error {
	return a.manager.RenameAccount(vaultName, oldName, newName)
}

func (a *accountService) ListAccounts(vaultName string) ([]string, error) {
	return a.manager.ListAccounts(vaultName)
}

// CopyPassword decrypts the account and puts the password on the system
// clipboard. The decrypted record is destroyed before returning; the
// clipboard copy is unavoidable plaintext exposure the user asked for.
func (a *accountService) CopyPassword(ctx context.Context, vaultName, accountName string) error {
	userpass, err := a.GetAccount(ctx, vaultName, accountName)
	if err != nil {
		return err
	}
	defer userpass.Destroy()

	if err := clipboard.WriteAll(string(userpass.Password.Bytes())); err != nil {
		return fmt.Errorf("copy password to clipboard: %w", err)
	}

	a.logger.Info().Str("vault", vaultName).Str("account", accountName).Msg("password copied to clipboard")
	return nil
}
