// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package gpgtest provides a real in-process OpenPGP engine for tests:
// freshly generated keys, no pinentry, no subprocess.
package gpgtest

import (
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/MKhiriev/fmp-vault/internal/gpg"
)

// NewEngine generates one Curve25519 key per email and returns a
// KeyringEngine holding them. The private keys are unencrypted, so both
// Encrypt and Decrypt work without any prompt.
func NewEngine(t *testing.T, emails ...string) *gpg.KeyringEngine {
	t.Helper()

	cfg := &packet.Config{
		Algorithm: packet.PubKeyAlgoEdDSA,
		Curve:     packet.Curve25519,
	}

	var entities openpgp.EntityList
	for _, email := range emails {
		entity, err := openpgp.NewEntity("fmp test key", "", email, cfg)
		if err != nil {
			t.Fatalf("generate test key for %s: %v", email, err)
		}
		entities = append(entities, entity)
	}
	return gpg.NewKeyringEngine(entities)
}
