// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package totp

//go:generate mockgen -source=ledger.go -destination=../mock/ledger_mock.go -package=mock

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Ledger records which vaults require a TOTP second factor, independently
// of whether the encrypted secret file is still present. It is injected
// into the subsystem so tests can substitute an in-memory double.
type Ledger interface {
	// Contains reports whether vault is recorded in any ledger copy.
	Contains(vault string) bool
	// Union returns the set of all recorded vault names across copies.
	Union() map[string]struct{}
	// Add records vault in every ledger copy.
	Add(vault string) error
	// Remove purges vault from every ledger copy.
	Remove(vault string) error
}

// FileLedger is the production Ledger: the same newline-separated, sorted
// list of vault names written redundantly to the user config directory
// and the user data directory. Deleting or renaming a vault's totp.gpg
// alone cannot silently drop the 2FA requirement, because the name
// survives in both copies until an explicit disable.
//
// Each copy is replaced via write-temp-then-rename, so a crash cannot
// truncate a copy. There is still no inter-process locking: two processes
// toggling 2FA on the same vault at once can lose one update. Known
// limitation, matching the read-modify-write contract in the design.
type FileLedger struct {
	paths []string
}

// NewFileLedger places one ledger copy under each of configDir and
// dataDir, at fmp/totp_ledger.
func NewFileLedger(configDir, dataDir string) *FileLedger {
	return &FileLedger{paths: []string{
		filepath.Join(configDir, "fmp", "totp_ledger"),
		filepath.Join(dataDir, "fmp", "totp_ledger"),
	}}
}

// Contains implements [Ledger].
func (l *FileLedger) Contains(vault string) bool {
	_, ok := l.Union()[vault]
	return ok
}

// Union implements [Ledger]. A missing or unreadable copy contributes
// nothing; read errors are deliberately not propagated so that one
// damaged copy cannot mask the other.
func (l *FileLedger) Union() map[string]struct{} {
	set := make(map[string]struct{})
	for _, path := range l.paths {
		for name := range loadLedgerAt(path) {
			set[name] = struct{}{}
		}
	}
	return set
}

// Add implements [Ledger].
func (l *FileLedger) Add(vault string) error {
	for _, path := range l.paths {
		set := loadLedgerAt(path)
		set[vault] = struct{}{}
		if err := saveLedgerAt(path, set); err != nil {
			return err
		}
	}
	return nil
}

// Remove implements [Ledger]. The purge runs against every copy even if
// the name is absent from some of them, defending against partial prior
// failures.
func (l *FileLedger) Remove(vault string) error {
	for _, path := range l.paths {
		set := loadLedgerAt(path)
		delete(set, vault)
		if err := saveLedgerAt(path, set); err != nil {
			return err
		}
	}
	return nil
}

func loadLedgerAt(path string) map[string]struct{} {
	set := make(map[string]struct{})
	raw, err := os.ReadFile(path)
	if err != nil {
		return set
	}
	for _, line := range strings.Split(string(raw), "\n") {
		name := strings.TrimSpace(line)
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// saveLedgerAt writes the set as sorted newline-separated names, staged
// to a temp file and renamed into place.
func saveLedgerAt(path string, set map[string]struct{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create ledger directory for %s: %w", path, err)
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, []byte(strings.Join(names, "\n")), 0o600); err != nil {
		return fmt.Errorf("write ledger %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace ledger %s: %w", path, err)
	}
	return nil
}
