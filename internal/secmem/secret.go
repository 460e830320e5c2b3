// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package secmem holds plaintext secret material in buffers that are
// locked against swapping while live and zeroized exactly once when the
// holder is done with them.
//
// The locking is best-effort hardening (mlock on Unix-like systems), not a
// sandboxing guarantee: a local attacker with process access can still
// read the memory. What the package does guarantee is the lifecycle
// discipline: every function that holds decrypted bytes can write
//
//	s := secmem.Take(plaintext)
//	defer s.Destroy()
//
// and the zeroize-on-every-exit-path invariant cannot be forgotten by a
// later edit adding an early return.
package secmem

// Secret owns a byte buffer containing secret material. It is not safe
// for concurrent use; the vault core is single-threaded per invocation.
type Secret struct {
	buf       []byte
	locked    bool
	destroyed bool
}

// Take wraps b in a Secret, taking ownership of the slice, and attempts to
// lock the backing memory against swap. The caller must not retain or
// reuse b afterwards.
func Take(b []byte) *Secret {
	s := &Secret{buf: b}
	s.locked = lockMemory(b)
	return s
}

// Copy returns a Secret holding an independent locked copy of b. The
// caller keeps ownership of b and should wipe it separately if it holds
// secret material.
func Copy(b []byte) *Secret {
	dup := make([]byte, len(b))
	copy(dup, b)
	return Take(dup)
}

// FromString returns a Secret holding a locked copy of the string's bytes.
// Go strings cannot be zeroized, so callers should prefer passing byte
// slices when the source buffer is under their control.
func FromString(s string) *Secret {
	return Copy([]byte(s))
}

// Bytes exposes the underlying buffer. The slice is only valid until
// Destroy is called; callers must not keep references across that point.
func (s *Secret) Bytes() []byte {
	if s == nil || s.destroyed {
		return nil
	}
	return s.buf
}

// Len reports the buffer length, zero after Destroy.
func (s *Secret) Len() int {
	if s == nil || s.destroyed {
		return 0
	}
	return len(s.buf)
}

// Destroy zeroizes the buffer and unlocks the memory. It is idempotent
// and safe on a nil receiver, so it can be deferred unconditionally.
func (s *Secret) Destroy() {
	if s == nil || s.destroyed {
		return
	}
	Wipe(s.buf)
	if s.locked {
		unlockMemory(s.buf)
		s.locked = false
	}
	s.buf = nil
	s.destroyed = true
}

// Wipe overwrites b with zeros in place. It is used directly for
// transient buffers that never become a Secret, such as the colon-joined
// plaintext assembled just before encryption.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
