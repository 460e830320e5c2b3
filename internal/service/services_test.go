// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service_test

import (
	"context"
	"encoding/base32"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fmp-vault/internal/config"
	"github.com/MKhiriev/fmp-vault/internal/gpg/gpgtest"
	"github.com/MKhiriev/fmp-vault/internal/secmem"
	"github.com/MKhiriev/fmp-vault/internal/service"
	"github.com/MKhiriev/fmp-vault/internal/totp"
	"github.com/MKhiriev/fmp-vault/internal/vault"
	"github.com/MKhiriev/fmp-vault/models"
)

const testRecipient = "alice@example.com"

func newTestServices(t *testing.T) *service.Services {
	t.Helper()
	cfg := &config.Config{
		Paths: config.Paths{
			DataDir:   t.TempDir(),
			ConfigDir: t.TempDir(),
		},
	}
	engine := gpgtest.NewEngine(t, testRecipient)
	return service.NewServices(cfg, engine, nil)
}

// End-to-end walk through the front-end contract: vault creation, account
// round trip, 2FA enrollment and verification.
func TestServices_Scenario(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	require.NoError(t, services.VaultService.CreateVault(ctx, "work", testRecipient))

	userpass := models.UserPass{
		Username: "alice",
		Password: secmem.FromString("Tr0ub4dor&3"),
	}
	require.NoError(t, services.AccountService.AddAccount(ctx, "work", "email", userpass))
	userpass.Destroy()

	got, err := services.AccountService.GetAccount(ctx, "work", "email")
	require.NoError(t, err)
	defer got.Destroy()
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, []byte("Tr0ub4dor&3"), got.Password.Bytes())

	enrollment, err := services.TOTPService.Enable(ctx, "work")
	require.NoError(t, err)
	assert.Len(t, enrollment.Secret, 32)
	assert.Contains(t, enrollment.URI, "issuer=FMP")

	secret, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(enrollment.Secret)
	require.NoError(t, err)

	current := fmt.Sprintf("%06d", totp.HOTP(secret, uint64(time.Now().Unix()/30), 6))
	ok, err := services.TOTPService.Verify(ctx, "work", current)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, services.TOTPService.IsVerified("work"))

	stale := fmt.Sprintf("%06d", totp.HOTP(secret, uint64(time.Now().Add(-10*time.Minute).Unix()/30), 6))
	ok, err = services.TOTPService.Verify(ctx, "work", stale)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestServices_AccountLifecycle(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	require.NoError(t, services.VaultService.CreateVault(ctx, "work", testRecipient))

	userpass := models.UserPass{Username: "alice", Password: secmem.FromString("hunter2!")}
	require.NoError(t, services.AccountService.AddAccount(ctx, "work", "email", userpass))
	userpass.Destroy()

	require.NoError(t, services.AccountService.ChangeUsername(ctx, "work", "email", "alice@corp"))
	require.NoError(t, services.AccountService.ChangePassword(ctx, "work", "email", secmem.FromString("n3w-p4ss!")))

	got, err := services.AccountService.GetAccount(ctx, "work", "email")
	require.NoError(t, err)
	defer got.Destroy()
	assert.Equal(t, "alice@corp", got.Username)
	assert.Equal(t, []byte("n3w-p4ss!"), got.Password.Bytes())

	require.NoError(t, services.AccountService.RenameAccount("work", "email", "mail"))
	accounts, err := services.AccountService.ListAccounts("work")
	require.NoError(t, err)
	assert.Equal(t, []string{"mail"}, accounts)

	require.NoError(t, services.AccountService.DeleteAccount("work", "mail"))
	_, err = services.AccountService.GetAccount(ctx, "work", "mail")
	assert.ErrorIs(t, err, vault.ErrAccountNotFound)
}

func TestServices_AddAccountUnknownVault(t *testing.T) {
	services := newTestServices(t)

	userpass := models.UserPass{Username: "alice", Password: secmem.FromString("pw")}
	defer userpass.Destroy()

	err := services.AccountService.AddAccount(context.Background(), "nope", "email", userpass)
	assert.ErrorIs(t, err, vault.ErrVaultNotFound)
}

func TestServices_DisableResetsSession(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	require.NoError(t, services.VaultService.CreateVault(ctx, "work", testRecipient))

	enrollment, err := services.TOTPService.Enable(ctx, "work")
	require.NoError(t, err)

	secret, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(enrollment.Secret)
	require.NoError(t, err)
	code := fmt.Sprintf("%06d", totp.HOTP(secret, uint64(time.Now().Unix()/30), 6))

	ok, err := services.TOTPService.Verify(ctx, "work", code)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, services.TOTPService.Disable("work"))
	assert.False(t, services.TOTPService.IsVerified("work"))
	assert.False(t, services.TOTPService.IsRequired("work"))
}

func TestServices_PasswordService(t *testing.T) {
	services := newTestServices(t)

	strength := services.PasswordService.Estimate("password123")
	assert.LessOrEqual(t, strength.Bits, float64(59), "a dictionary-based password never rates above Okay")

	generated, err := services.PasswordService.GenerateDefault()
	require.NoError(t, err)
	assert.Len(t, []rune(generated), 20)

	custom, err := services.PasswordService.Generate(models.GeneratorOptions{Digits: true, Length: 8})
	require.NoError(t, err)
	assert.Len(t, []rune(custom), 8)
}
