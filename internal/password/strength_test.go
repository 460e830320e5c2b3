// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/fmp-vault/internal/password"
	"github.com/MKhiriev/fmp-vault/models"
)

func TestEstimate_EmptyPassword(t *testing.T) {
	got := password.Estimate("")
	assert.Zero(t, got.Bits)
	assert.Equal(t, models.RatingVeryWeak, got.Rating)
}

func TestEstimate_Monotonicity(t *testing.T) {
	repeated := password.Estimate("aaaaaaaa")
	mixed := password.Estimate("K7!qZ#m2")

	assert.Less(t, repeated.Bits, mixed.Bits)
	assert.Zero(t, repeated.Bits, "a single repeated character carries no information")
}

func TestEstimate_Ratings(t *testing.T) {
	tests := []struct {
		password string
		atMost   models.Rating
	}{
		{"password123", models.RatingOkay},
		{"password", models.RatingVeryWeak},
		{"qwerty", models.RatingVeryWeak},
		{"12345678", models.RatingVeryWeak},
		{"abcd1234", models.RatingVeryWeak},
	}

	order := map[models.Rating]int{
		models.RatingVeryWeak:   0,
		models.RatingWeak:       1,
		models.RatingOkay:       2,
		models.RatingStrong:     3,
		models.RatingVeryStrong: 4,
	}

	for _, tt := range tests {
		got := password.Estimate(tt.password)
		assert.LessOrEqualf(t, order[got.Rating], order[tt.atMost],
			"password %q rated %s, want at most %s", tt.password, got.Rating, tt.atMost)
	}
}

func TestEstimate_WeakPatternPenalties(t *testing.T) {
	// Each pair shares length and character variety; the penalized form
	// must not score higher than the clean one.
	tests := []struct {
		name      string
		penalized string
		clean     string
	}{
		{"dictionary word", "Password!77", "Pobswaru!77"},
		{"leetspeak dictionary word", "P@ssw0rd!77", "P@bsw0ru!77"},
		{"ascending run", "wxyz!K7e", "wszy!K7e"},
		{"keyboard row", "asdfK!7e", "adfsK!7e"},
		{"year token", "Rk!2019e", "Rk!2391e"},
		{"weekday token", "fridayK!7", "firdayK!7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			penalized := password.Estimate(tt.penalized)
			clean := password.Estimate(tt.clean)
			assert.LessOrEqual(t, penalized.Bits, clean.Bits)
		})
	}
}

func TestEstimate_ClassDiversityPenalty(t *testing.T) {
	// Same frequency distribution, one class vs four.
	oneClass := password.Estimate("qzjxvkwm")
	fourClasses := password.Estimate("qzJX7!w ")
	assert.Less(t, oneClass.Bits, fourClasses.Bits)
}

func TestEstimate_Deterministic(t *testing.T) {
	first := password.Estimate("Tr0ub4dor&3")
	second := password.Estimate("Tr0ub4dor&3")
	assert.Equal(t, first, second)
}

func TestMeter_CachesLastResult(t *testing.T) {
	meter := password.NewMeter()

	first := meter.Estimate("Tr0ub4dor&3")
	cached := meter.Estimate("Tr0ub4dor&3")
	assert.Equal(t, first, cached)

	other := meter.Estimate("K7!qZ#m2")
	assert.Equal(t, password.Estimate("K7!qZ#m2"), other)

	// Switching back recomputes and still agrees with the pure function.
	back := meter.Estimate("Tr0ub4dor&3")
	assert.Equal(t, first, back)
}
