// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-data-dir", "/srv/fmp/data",
		"-gpg-mode", "cli",
		"-gpg-binary", "gpg2",
		"-gpg-args", "--homedir /tmp/gnupg",
		"-totp-issuer", "Example",
		"-totp-period", "60s",
		"-length", "24",
		"-c", "/etc/fmp.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "/srv/fmp/data", cfg.Paths.DataDir)
	assert.Equal(t, EngineCLI, cfg.GPG.Mode)
	assert.Equal(t, "gpg2", cfg.GPG.Binary)
	assert.Equal(t, []string{"--homedir", "/tmp/gnupg"}, cfg.GPG.ExtraArgs)
	assert.Equal(t, "Example", cfg.TOTP.Issuer)
	assert.Equal(t, 60*time.Second, cfg.TOTP.Period)
	assert.Equal(t, 24, cfg.Generator.Length)
	assert.Equal(t, "/etc/fmp.json", cfg.JSONFilePath)
}

func TestParseFlags_KeyringList(t *testing.T) {
	cfg, err := ParseFlags([]string{"-keyring", "/keys/a.gpg:/keys/b.gpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/keys/a.gpg", "/keys/b.gpg"}, cfg.GPG.KeyringPaths)
}

func TestParseFlags_NoFlags(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Paths.DataDir)
	assert.Nil(t, cfg.GPG.ExtraArgs)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := ParseFlags([]string{"-no-such-flag"})
	assert.Error(t, err)
}
