// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
)

// HOTP computes the RFC 4226 HMAC-based one-time password for a secret
// and counter value: HMAC-SHA1 over the big-endian 8-byte counter,
// dynamic truncation using the low nibble of the last MAC byte as the
// offset, top bit of the selected word masked, reduced modulo 10^digits.
//
// The caller formats the result zero-padded to digits width.
func HOTP(secret []byte, counter uint64, digits int) uint32 {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	code := uint32(sum[offset]&0x7f)<<24 |
		uint32(sum[offset+1])<<16 |
		uint32(sum[offset+2])<<8 |
		uint32(sum[offset+3])

	mod := uint32(1)
	for i := 0; i < digits; i++ {
		mod *= 10
	}
	return code % mod
}
