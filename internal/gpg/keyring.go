// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gpg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// KeyringEngine implements [Engine] with an in-process OpenPGP
// implementation over key material loaded from armored key files. It is
// the library-binding alternative to [CLIEngine]: no subprocess, no
// pinentry, useful for headless setups and for tests.
//
// Private keys in the ring must be unencrypted or unlocked by the caller
// before Decrypt is used; this engine never prompts.
type KeyringEngine struct {
	entities openpgp.EntityList
}

// NewKeyringEngine wraps an already-loaded entity list.
func NewKeyringEngine(entities openpgp.EntityList) *KeyringEngine {
	return &KeyringEngine{entities: entities}
}

// LoadKeyring reads armored (falling back to binary) OpenPGP key rings
// from the given paths and returns an engine over their union.
func LoadKeyring(paths ...string) (*KeyringEngine, error) {
	var all openpgp.EntityList
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read keyring %s: %w", path, err)
		}
		entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(raw))
		if err != nil {
			entities, err = openpgp.ReadKeyRing(bytes.NewReader(raw))
			if err != nil {
				return nil, fmt.Errorf("parse keyring %s: %w", path, err)
			}
		}
		all = append(all, entities...)
	}
	return NewKeyringEngine(all), nil
}

// Encrypt implements [Engine]. The recipient identifier is matched
// case-insensitively against the email and name of each key's identities.
func (e *KeyringEngine) Encrypt(_ context.Context, recipient string, plaintext []byte) ([]byte, error) {
	entity := e.entityFor(recipient)
	if entity == nil {
		return nil, fmt.Errorf("recipient %q: %w", recipient, ErrRecipientNotFound)
	}

	var buf bytes.Buffer
	w, err := openpgp.Encrypt(&buf, []*openpgp.Entity{entity}, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w for recipient %q: %v", ErrEncryptFailed, recipient, err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("%w for recipient %q: %v", ErrEncryptFailed, recipient, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w for recipient %q: %v", ErrEncryptFailed, recipient, err)
	}
	return buf.Bytes(), nil
}

// Decrypt implements [Engine].
func (e *KeyringEngine) Decrypt(_ context.Context, ciphertext []byte) ([]byte, error) {
	md, err := openpgp.ReadMessage(bytes.NewReader(ciphertext), e.entities, nil, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	plaintext, err := io.ReadAll(md.UnverifiedBody)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

func (e *KeyringEngine) entityFor(recipient string) *openpgp.Entity {
	for _, entity := range e.entities {
		for _, identity := range entity.Identities {
			if identity.UserId == nil {
				continue
			}
			if strings.EqualFold(identity.UserId.Email, recipient) ||
				strings.EqualFold(identity.UserId.Name, recipient) {
				return entity
			}
		}
	}
	return nil
}
