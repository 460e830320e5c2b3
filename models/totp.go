// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Enrollment is the one-time disclosure returned when 2FA is enabled for a
// vault: the Base32-encoded shared secret and the otpauth:// URI a
// third-party authenticator app can consume.
//
// The caller is responsible for showing these to the user once and not
// persisting them anywhere; the only durable copy of the secret is the
// encrypted totp.gpg file.
type Enrollment struct {
	Secret string
	URI    string
}
