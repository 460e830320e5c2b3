package service

import (
	"context"

	"github.com/MKhiriev/fmp-vault/internal/logger"
	"github.com/MKhiriev/fmp-vault/internal/vault"
)

type vaultService struct {
	manager *vault.Manager

	logger *logger.Logger
}

// NewVaultService returns the vault lifecycle service over manager.
func NewVaultService(manager *vault.Manager, log *logger.Logger) VaultService {
	if log == nil {
		log = logger.Nop()
	}
	return &vaultService{manager: manager, logger: log}
}

func (v *vaultService) CreateVault(ctx context.Context, vaultName, recipient string) error {
	return v.manager.CreateVault(ctx, vaultName, recipient)
}

func (v *vaultService) DeleteVault(vaultName string) error {
	return v.manager.DeleteVault(vaultName)
}

func (v *vaultService) RenameVault(oldName, newName string) error {
	return v.manager.RenameVault(oldName, newName)
}

func (v *vaultService) ListVaults() ([]string, error) {
	return v.manager.ListVaults()
}
