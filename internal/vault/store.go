// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/fmp-vault/internal/gpg"
	"github.com/MKhiriev/fmp-vault/internal/logger"
	"github.com/MKhiriev/fmp-vault/internal/secmem"
	"github.com/MKhiriev/fmp-vault/models"
)

// Store is the read/write boundary between a [models.UserPass] and its
// on-disk GPG envelope for exactly one account. Calls on one Store are
// strictly sequential; concurrent access to the same account is not
// supported.
type Store struct {
	engine    gpg.Engine
	locations Locations
	logger    *logger.Logger
}

// NewStore binds an engine to one account's locations.
func NewStore(engine gpg.Engine, locations Locations, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{engine: engine, locations: locations, logger: log}
}

// Locations exposes the path set the store operates on.
func (s *Store) Locations() Locations { return s.locations }

// EncryptToFile encrypts userpass and replaces the account's data.gpg.
//
// The plaintext is the byte string "<username>:<password>", held in a
// locked buffer and zeroized before return on every path. The ciphertext
// is staged to a 0600 temp file in the account directory and renamed over
// data.gpg, so a crash mid-write leaves the previous envelope intact.
//
// Usernames must not contain a colon; the record is split on the first
// colon when read back.
func (s *Store) EncryptToFile(ctx context.Context, userpass models.UserPass) error {
	pw := userpass.Password.Bytes()

	data := make([]byte, 0, len(userpass.Username)+1+len(pw))
	data = append(data, userpass.Username...)
	data = append(data, ':')
	data = append(data, pw...)

	plaintext := secmem.Take(data)
	defer plaintext.Destroy()

	recipient, err := ReadRecipient(s.locations)
	if err != nil {
		return err
	}

	ciphertext, err := s.engine.Encrypt(ctx, recipient, plaintext.Bytes())
	if err != nil {
		if errors.Is(err, gpg.ErrRecipientNotFound) {
			return fmt.Errorf("recipient %q: %w", recipient, ErrRecipientInvalid)
		}
		return fmt.Errorf("encrypt account data for %q: %w", recipient, err)
	}

	if err := s.writeEnvelope(ciphertext); err != nil {
		return err
	}

	s.logger.Debug().Str("data", s.locations.Data).Msg("account envelope written")
	return nil
}

// DecryptFromFile reads and decrypts the account's data.gpg and parses it
// into a fresh [models.UserPass] whose password is independently locked.
// The full decrypted buffer is zeroized before return on every path.
func (s *Store) DecryptFromFile(ctx context.Context) (models.UserPass, error) {
	encrypted, err := os.ReadFile(s.locations.Data)
	if err != nil {
		if os.IsNotExist(err) {
			return models.UserPass{}, fmt.Errorf("account data %s: %w (check for typos or create it)", s.locations.Data, ErrAccountNotFound)
		}
		return models.UserPass{}, fmt.Errorf("read account data %s: %w", s.locations.Data, err)
	}

	decrypted, err := s.engine.Decrypt(ctx, encrypted)
	if err != nil {
		return models.UserPass{}, fmt.Errorf("account %s: %w", s.locations.Data, err)
	}

	plaintext := secmem.Take(decrypted)
	defer plaintext.Destroy()

	buf := plaintext.Bytes()
	sep := bytes.IndexByte(buf, ':')
	if sep < 0 {
		return models.UserPass{}, fmt.Errorf("%w: missing separator", ErrMalformedData)
	}
	if sep == len(buf)-1 {
		return models.UserPass{}, fmt.Errorf("%w: empty password", ErrMalformedData)
	}

	return models.UserPass{
		Username: string(buf[:sep]),
		Password: secmem.Copy(buf[sep+1:]),
	}, nil
}

// ChangeUsername decrypts the account, replaces the username, and
// re-encrypts. Not transactional: a failure between decrypt and encrypt
// leaves the prior envelope untouched.
func (s *Store) ChangeUsername(ctx context.Context, newUsername string) error {
	userpass, err := s.DecryptFromFile(ctx)
	if err != nil {
		return err
	}
	defer userpass.Destroy()

	userpass.Username = newUsername
	return s.EncryptToFile(ctx, userpass)
}

// ChangePassword decrypts the account, replaces the password, and
// re-encrypts. Takes ownership of newPassword and destroys it before
// returning, whether or not the write succeeded.
func (s *Store) ChangePassword(ctx context.Context, newPassword *secmem.Secret) error {
	defer newPassword.Destroy()

	userpass, err := s.DecryptFromFile(ctx)
	if err != nil {
		return err
	}
	defer userpass.Destroy()

	userpass.Password.Destroy()
	userpass.Password = newPassword
	return s.EncryptToFile(ctx, userpass)
}

// ReadRecipient loads and trims a vault's recipient identifier.
func ReadRecipient(loc Locations) (string, error) {
	raw, err := os.ReadFile(loc.Recipient)
	if err != nil {
		return "", fmt.Errorf("recipient file %s: %w", loc.Recipient, ErrRecipientInvalid)
	}
	recipient := strings.TrimSpace(string(raw))
	if recipient == "" {
		return "", fmt.Errorf("recipient file %s is empty: %w", loc.Recipient, ErrRecipientInvalid)
	}
	return recipient, nil
}

// writeEnvelope stages ciphertext to a uniquely named 0600 temp file in
// the account directory and renames it over data.gpg.
func (s *Store) writeEnvelope(ciphertext []byte) error {
	tmp := s.locations.Data + "." + uuid.NewString() + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create envelope temp file %s: %w", tmp, err)
	}
	if _, err := f.Write(ciphertext); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write envelope %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close envelope %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.locations.Data); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace envelope %s: %w", s.locations.Data, err)
	}
	return nil
}
