// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build unix

package secmem

import "golang.org/x/sys/unix"

// lockMemory pins b's backing pages so they cannot be swapped to disk.
// Failure (e.g. RLIMIT_MEMLOCK exhausted) is not an error: locking is
// best-effort and the caller proceeds with an unlocked buffer.
func lockMemory(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	return unix.Mlock(b) == nil
}

// unlockMemory releases pages pinned by lockMemory. Called only after the
// buffer has been zeroized.
func unlockMemory(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = unix.Munlock(b)
}
