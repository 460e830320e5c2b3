package service

import (
	"context"
	"time"

	"github.com/MKhiriev/fmp-vault/internal/logger"
	"github.com/MKhiriev/fmp-vault/internal/totp"
	"github.com/MKhiriev/fmp-vault/models"
)

type totpService struct {
	subsystem *totp.Subsystem
	session   *totp.Session
	ttl       time.Duration

	logger *logger.Logger
}

// NewTOTPService combines the durable TOTP subsystem with the in-process
// verification session. ttl is the window a successful verification keeps
// a vault unlocked.
func NewTOTPService(subsystem *totp.Subsystem, session *totp.Session, ttl time.Duration, log *logger.Logger) TOTPService {
	if log == nil {
		log = logger.Nop()
	}
	return &totpService{subsystem: subsystem, session: session, ttl: ttl, logger: log}
}

func (t *totpService) Enable(ctx context.Context, vaultName string) (models.Enrollment, error) {
	return t.subsystem.Enable(ctx, vaultName)
}

// Disable turns the second factor off and forgets any live verification
// for the vault.
func (t *totpService) Disable(vaultName string) error {
	if err := t.subsystem.Disable(vaultName); err != nil {
		return err
	}
	t.session.Reset(vaultName)
	return nil
}

func (t *totpService) Verify(ctx context.Context, vaultName, code string) (bool, error) {
	ok, err := t.subsystem.Verify(ctx, vaultName, code)
	if err != nil || !ok {
		return false, err
	}

	t.session.MarkVerified(vaultName, time.Now(), t.ttl)
	t.logger.Info().Str("vault", vaultName).Msg("2FA verified")
	return true, nil
}

func (t *totpService) IsRequired(vaultName string) bool {
	return t.subsystem.IsRequired(vaultName)
}

func (t *totpService) IsVerified(vaultName string) bool {
	return t.session.IsVerified(vaultName, time.Now())
}

func (t *totpService) WarmUp(ctx context.Context, vaultName string) error {
	return t.subsystem.WarmUp(ctx, vaultName)
}
