// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/MKhiriev/fmp-vault/models"
)

// ErrEmptyPool is returned when the selected classes, minus the excluded
// characters, leave nothing to draw from.
var ErrEmptyPool = errors.New("character pool is empty")

// Class pools. Symbols are the 32 ASCII punctuation characters; the
// accented pool is a fixed set of Latin-1 letters.
const (
	poolLowercase = "abcdefghijklmnopqrstuvwxyz"
	poolUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	poolDigits    = "0123456789"
	poolSymbols   = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	poolSpace     = " "
	poolAccented  = "àáâãäåæçèéêëìíîïñòóôõöøùúûüýÿÀÁÂÃÄÅÆÇÈÉÊËÌÍÎÏÑÒÓÔÕÖØÙÚÛÜÝ"
)

// Generate draws opts.Length independent uniformly random characters,
// with replacement, from the pool selected by opts. The pool is the union
// of the enabled class pools minus opts.Exclude, plus opts.Include;
// include wins over exclude.
func Generate(opts models.GeneratorOptions) (string, error) {
	if opts.Length <= 0 {
		return "", fmt.Errorf("password length must be positive, got %d", opts.Length)
	}

	pool := buildPool(opts)
	if len(pool) == 0 {
		return "", ErrEmptyPool
	}

	size := big.NewInt(int64(len(pool)))
	out := make([]rune, opts.Length)
	for i := range out {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("read random source: %w", err)
		}
		out[i] = pool[n.Int64()]
	}
	return string(out), nil
}

func buildPool(opts models.GeneratorOptions) []rune {
	var candidates []rune
	for _, class := range []struct {
		enabled bool
		chars   string
	}{
		{opts.Lowercase, poolLowercase},
		{opts.Uppercase, poolUppercase},
		{opts.Digits, poolDigits},
		{opts.Symbols, poolSymbols},
		{opts.Space, poolSpace},
		{opts.Accented, poolAccented},
	} {
		if class.enabled {
			candidates = append(candidates, []rune(class.chars)...)
		}
	}

	excluded := make(map[rune]struct{}, len(opts.Exclude))
	for _, r := range opts.Exclude {
		excluded[r] = struct{}{}
	}

	seen := make(map[rune]struct{}, len(candidates))
	pool := make([]rune, 0, len(candidates))
	add := func(r rune) {
		if _, dup := seen[r]; dup {
			return
		}
		seen[r] = struct{}{}
		pool = append(pool, r)
	}

	for _, r := range candidates {
		if _, skip := excluded[r]; skip {
			continue
		}
		add(r)
	}
	for _, r := range opts.Include {
		add(r)
	}
	return pool
}
