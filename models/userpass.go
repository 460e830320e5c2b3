// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/MKhiriev/fmp-vault/internal/secmem"

// UserPass is the in-memory form of one account record: a plaintext
// username and the password held in a locked secret buffer.
//
// It is never serialized as a struct; on disk the account exists only as
// the GPG envelope of the byte string "<username>:<password>". The caller
// that receives a UserPass owns the password buffer and must call
// Destroy when finished with it.
type UserPass struct {
	Username string
	Password *secmem.Secret
}

// Destroy zeroizes the password buffer. Safe to call on a zero value and
// safe to call more than once.
func (u *UserPass) Destroy() {
	if u.Password != nil {
		u.Password.Destroy()
	}
}
