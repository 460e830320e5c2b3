// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package password implements the strength estimator and the constrained
// random generator. Both are pure functions over the supplied plaintext;
// nothing here touches the vault tree or the crypto engine.
package password

import (
	"crypto/sha256"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/MKhiriev/fmp-vault/models"
)

// Penalty weights in bits. The sum over all triggered patterns is clamped
// to maxPenalty before subtraction.
const (
	penaltyDictionary = 60
	penaltySubstring  = 40
	penaltyRepeat     = 30
	penaltySequence   = 30
	penaltyKeyboard   = 30
	penaltyYear       = 20
	penaltyDateWord   = 15
	penaltyOneClass   = 20
	penaltyTwoClasses = 10
	maxPenalty        = 100
)

// commonPasswords is a fixed dictionary of frequently chosen passwords.
// Matched exact, leetspeak-normalized, reversed, and as substrings.
var commonPasswords = []string{
	"password", "letmein", "welcome", "monkey", "dragon",
	"master", "qwerty", "login", "admin", "abc123",
	"iloveyou", "sunshine", "princess", "football", "baseball",
	"superman", "batman", "trustno1", "shadow", "freedom",
	"whatever", "secret", "summer", "winter", "hello",
	"charlie", "starwars", "computer", "internet", "access",
	"pokemon", "123456", "12345678", "111111", "000000",
}

var dateWords = []string{
	"january", "february", "march", "april", "june", "july",
	"august", "september", "october", "november", "december",
	"monday", "tuesday", "wednesday", "thursday", "friday",
	"saturday", "sunday",
}

// qwertyRows are the contiguous US-QWERTY key rows checked forward and
// reversed.
var qwertyRows = []string{
	"1234567890",
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

var leetReplacer = strings.NewReplacer(
	"@", "a", "4", "a",
	"8", "b",
	"3", "e",
	"1", "i", "!", "i",
	"0", "o",
	"$", "s", "5", "s",
	"7", "t", "+", "t",
)

// Estimate scores a password: Shannon entropy of its character-frequency
// distribution scaled by length, minus a clamped penalty for recognizable
// weak patterns, floored at zero. Deterministic and side-effect-free.
func Estimate(password string) models.Strength {
	runes := []rune(password)
	if len(runes) == 0 {
		return models.Strength{Bits: 0, Rating: models.RatingVeryWeak}
	}

	bits := shannonBits(runes) - penaltyBits(password, runes)
	if bits < 0 || math.IsNaN(bits) {
		bits = 0
	}
	return models.Strength{Bits: bits, Rating: models.RatingForBits(bits)}
}

// Meter memoizes the last Estimate result keyed by a SHA-256 of the
// input, so a UI redraw loop showing the same buffer every frame does not
// recompute. The plaintext itself is never retained.
type Meter struct {
	mu   sync.Mutex
	key  [sha256.Size]byte
	ok   bool
	last models.Strength
}

// NewMeter returns an empty memoizing estimator.
func NewMeter() *Meter {
	return &Meter{}
}

// Estimate returns the cached result when the input is unchanged since
// the previous call, otherwise delegates to [Estimate].
func (m *Meter) Estimate(password string) models.Strength {
	key := sha256.Sum256([]byte(password))

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ok && m.key == key {
		return m.last
	}
	m.key = key
	m.last = Estimate(password)
	m.ok = true
	return m.last
}

// shannonBits is H × length, where H = -Σ p·log2(p) over the rune
// frequency distribution.
func shannonBits(runes []rune) float64 {
	freq := make(map[rune]int, len(runes))
	for _, r := range runes {
		freq[r]++
	}

	total := float64(len(runes))
	var h float64
	for _, count := range freq {
		p := float64(count) / total
		h -= p * math.Log2(p)
	}
	return h * total
}

func penaltyBits(password string, runes []rune) float64 {
	lower := strings.ToLower(password)
	leet := leetReplacer.Replace(lower)
	reversed := reverse(lower)

	var penalty float64
	if matchesDictionary(lower, leet, reversed) {
		penalty += penaltyDictionary
	} else if containsDictionaryWord(lower, leet) {
		penalty += penaltySubstring
	}
	if len(runes) > 1 && isSingleRepeatedRune(runes) {
		penalty += penaltyRepeat
	}
	if hasSequentialRun(runes) {
		penalty += penaltySequence
	}
	if hasKeyboardRun(lower) {
		penalty += penaltyKeyboard
	}
	if hasYearToken(lower) {
		penalty += penaltyYear
	}
	if containsAny(lower, dateWords) {
		penalty += penaltyDateWord
	}
	switch classes := countClasses(runes); {
	case classes < 2:
		penalty += penaltyOneClass
	case classes == 2 && len(runes) <= 10:
		penalty += penaltyTwoClasses
	}

	if penalty > maxPenalty {
		penalty = maxPenalty
	}
	return penalty
}

func matchesDictionary(lower, leet, reversed string) bool {
	for _, word := range commonPasswords {
		if lower == word || leet == word || reversed == word {
			return true
		}
	}
	return false
}

func containsDictionaryWord(lower, leet string) bool {
	for _, word := range commonPasswords {
		if len(word) < 4 {
			continue
		}
		if strings.Contains(lower, word) || strings.Contains(leet, word) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}

func isSingleRepeatedRune(runes []rune) bool {
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}

// hasSequentialRun reports a run of 4 or more consecutive ascending or
// descending character codes, e.g. "abcd" or "9876".
func hasSequentialRun(runes []rune) bool {
	ascending, descending := 1, 1
	for i := 1; i < len(runes); i++ {
		switch runes[i] - runes[i-1] {
		case 1:
			ascending++
			descending = 1
		case -1:
			descending++
			ascending = 1
		default:
			ascending, descending = 1, 1
		}
		if ascending >= 4 || descending >= 4 {
			return true
		}
	}
	return false
}

// hasKeyboardRun reports a substring of 4 or more characters matching a
// contiguous run on a US-QWERTY row, in either direction.
func hasKeyboardRun(lower string) bool {
	for _, row := range qwertyRows {
		rows := []string{row, reverse(row)}
		for _, r := range rows {
			for start := 0; start+4 <= len(r); start++ {
				if strings.Contains(lower, r[start:start+4]) {
					return true
				}
			}
		}
	}
	return false
}

// hasYearToken reports an embedded 4-digit token in 1900–2099.
func hasYearToken(lower string) bool {
	for i := 0; i+4 <= len(lower); i++ {
		chunk := lower[i : i+4]
		if !isDigits(chunk) {
			continue
		}
		if strings.HasPrefix(chunk, "19") || strings.HasPrefix(chunk, "20") {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func countClasses(runes []rune) int {
	var lower, upper, digit, symbol bool
	for _, r := range runes {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	classes := 0
	for _, present := range []bool{lower, upper, digit, symbol} {
		if present {
			classes++
		}
	}
	return classes
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
