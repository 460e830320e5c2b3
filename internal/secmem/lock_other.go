// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build !unix

package secmem

// Platforms without mlock keep the zeroize discipline but skip page
// pinning.
func lockMemory([]byte) bool { return false }

func unlockMemory([]byte) {}
