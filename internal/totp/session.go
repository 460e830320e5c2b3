// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package totp

import (
	"sync"
	"time"
)

// Session tracks which vaults have passed 2FA verification in the
// current process and until when. The state is in-memory only, so a new
// process always starts unverified. Expiry moves a vault back to
// "enabled, not verified", never to "disabled".
//
// Guarded by a mutex because front ends tend to poll from a render loop
// while verification runs elsewhere.
type Session struct {
	mu    sync.Mutex
	until map[string]time.Time
}

// NewSession returns an empty tracker.
func NewSession() *Session {
	return &Session{until: make(map[string]time.Time)}
}

// MarkVerified records a successful verification for vault, valid for
// ttl from now.
func (s *Session) MarkVerified(vault string, now time.Time, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until[vault] = now.Add(ttl)
}

// IsVerified reports whether vault has an unexpired verification.
func (s *Session) IsVerified(vault string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.until[vault]
	return ok && now.Before(deadline)
}

// Reset forgets the verification state for vault, e.g. after a disable
// or an explicit lock action.
func (s *Session) Reset(vault string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.until, vault)
}
