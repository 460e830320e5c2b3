// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package password_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fmp-vault/internal/password"
	"github.com/MKhiriev/fmp-vault/models"
)

func TestGenerate_LengthAndMembership(t *testing.T) {
	opts := models.GeneratorOptions{Lowercase: true, Digits: true, Length: 64}

	got, err := password.Generate(opts)
	require.NoError(t, err)
	require.Len(t, []rune(got), 64)

	for _, r := range got {
		assert.Truef(t, unicode.IsLower(r) || unicode.IsDigit(r), "unexpected character %q", r)
	}
}

func TestGenerate_DefaultOptions(t *testing.T) {
	got, err := password.Generate(models.DefaultGeneratorOptions())
	require.NoError(t, err)
	assert.Len(t, []rune(got), 20)
}

func TestGenerate_ExcludeRemovesCharacters(t *testing.T) {
	opts := models.GeneratorOptions{Digits: true, Exclude: "0123456", Length: 256}

	got, err := password.Generate(opts)
	require.NoError(t, err)

	for _, r := range got {
		assert.Contains(t, "789", string(r))
	}
}

func TestGenerate_IncludeWinsOverExclude(t *testing.T) {
	// "z" is both excluded and included; include wins, so with a
	// one-character pool every draw must be "z".
	opts := models.GeneratorOptions{
		Lowercase: true,
		Exclude:   "abcdefghijklmnopqrstuvwxyz",
		Include:   "z",
		Length:    32,
	}

	got, err := password.Generate(opts)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("z", 32), got)
}

func TestGenerate_EmptyPool(t *testing.T) {
	tests := []struct {
		name string
		opts models.GeneratorOptions
	}{
		{"no classes selected", models.GeneratorOptions{Length: 16}},
		{"class fully excluded", models.GeneratorOptions{Digits: true, Exclude: "0123456789", Length: 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := password.Generate(tt.opts)
			assert.ErrorIs(t, err, password.ErrEmptyPool)
		})
	}
}

func TestGenerate_InvalidLength(t *testing.T) {
	_, err := password.Generate(models.GeneratorOptions{Lowercase: true})
	assert.Error(t, err)
}

func TestGenerate_AccentedAndSpacePools(t *testing.T) {
	opts := models.GeneratorOptions{Space: true, Accented: true, Length: 128}

	got, err := password.Generate(opts)
	require.NoError(t, err)

	for _, r := range got {
		assert.Truef(t, r == ' ' || r > unicode.MaxASCII, "unexpected character %q", r)
	}
}
