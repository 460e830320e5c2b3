// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// GeneratorOptions selects the character pool and length for random
// password synthesis.
//
// The candidate pool is the union of the enabled class pools, minus the
// characters in Exclude, plus the characters in Include. Include always
// wins over Exclude: a character listed in both may appear in the output.
type GeneratorOptions struct {
	Lowercase bool
	Uppercase bool
	Digits    bool
	Symbols   bool
	Space     bool
	Accented  bool

	// Include are characters added to the pool unconditionally.
	Include string
	// Exclude are characters removed from the class pools.
	Exclude string

	Length int
}

// DefaultGeneratorOptions is the pool selection used when the front end
// has not expressed a preference: letters, digits and symbols, length 20.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Lowercase: true,
		Uppercase: true,
		Digits:    true,
		Symbols:   true,
		Length:    20,
	}
}
