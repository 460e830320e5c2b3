// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fmp.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON(t *testing.T) {
	path := writeJSONConfig(t, `{
		"paths": {"data_dir": "/srv/fmp/data", "config_dir": "/srv/fmp/config"},
		"gpg": {"mode": "keyring", "keyring_paths": ["/keys/a.gpg"]},
		"totp": {"issuer": "Example", "digits": 8, "period": "60s", "skew": 2},
		"generator": {"length": 24, "exclude": "O0l1"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/fmp/data", cfg.Paths.DataDir)
	assert.Equal(t, "/srv/fmp/config", cfg.Paths.ConfigDir)
	assert.Equal(t, EngineKeyring, cfg.GPG.Mode)
	assert.Equal(t, []string{"/keys/a.gpg"}, cfg.GPG.KeyringPaths)
	assert.Equal(t, "Example", cfg.TOTP.Issuer)
	assert.Equal(t, 8, cfg.TOTP.Digits)
	assert.Equal(t, 60*time.Second, cfg.TOTP.Period)
	assert.Equal(t, 2, cfg.TOTP.Skew)
	assert.Equal(t, 24, cfg.Generator.Length)
	assert.Equal(t, "O0l1", cfg.Generator.Exclude)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	path := writeJSONConfig(t, `{"totp": {"period": 30000000000}}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.TOTP.Period)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestParseJSON_MalformedFile(t *testing.T) {
	path := writeJSONConfig(t, `{"paths": `)

	_, err := parseJSON(path)
	assert.Error(t, err)
}
