package service

import (
	"time"

	"github.com/MKhiriev/fmp-vault/internal/config"
	"github.com/MKhiriev/fmp-vault/internal/gpg"
	"github.com/MKhiriev/fmp-vault/internal/logger"
	"github.com/MKhiriev/fmp-vault/internal/totp"
	"github.com/MKhiriev/fmp-vault/internal/vault"
)

// Services is the facade external front ends consume.
type Services struct {
	VaultService    VaultService
	AccountService  AccountService
	TOTPService     TOTPService
	PasswordService PasswordService
}

// NewServices wires the full dependency graph from the resolved
// configuration: the crypto engine, the vault manager, the TOTP subsystem
// with its file ledger and in-process session, and the password helpers.
func NewServices(cfg *config.Config, engine gpg.Engine, log *logger.Logger) *Services {
	if engine == nil {
		engine = NewEngine(cfg, log)
	}

	manager := vault.NewManager(cfg.Paths.DataDir, engine, log)
	ledger := totp.NewFileLedger(cfg.Paths.ConfigDir, cfg.Paths.DataDir)
	subsystem := totp.NewSubsystem(cfg.Paths.DataDir, engine, ledger, totp.Params{
		Issuer: cfg.TOTP.Issuer,
		Digits: cfg.TOTP.Digits,
		Period: cfg.TOTP.Period,
		Skew:   cfg.TOTP.Skew,
	}, log)

	return &Services{
		VaultService:    NewVaultService(manager, log),
		AccountService:  NewAccountService(manager, log),
		TOTPService:     NewTOTPService(subsystem, totp.NewSession(), defaultSessionTTL, log),
		PasswordService: NewPasswordService(cfg.GeneratorOptions()),
	}
}

// defaultSessionTTL is how long a successful verification keeps a vault
// unlocked before the front end must prompt again.
const defaultSessionTTL = 5 * time.Minute

// NewEngine builds the crypto engine selected by the configuration. In
// keyring mode a failure to load the keyring files degrades to an empty
// in-process keyring; encryption then fails per recipient rather than at
// startup.
func NewEngine(cfg *config.Config, log *logger.Logger) gpg.Engine {
	if log == nil {
		log = logger.Nop()
	}

	if cfg.GPG.Mode == config.EngineKeyring {
		engine, err := gpg.LoadKeyring(cfg.GPG.KeyringPaths...)
		if err != nil {
			log.Error().Err(err).Strs("paths", cfg.GPG.KeyringPaths).Msg("failed to load keyring")
			return gpg.NewKeyringEngine(nil)
		}
		return engine
	}
	return gpg.NewCLIEngine(cfg.GPG.Binary, cfg.GPG.ExtraArgs, log)
}
