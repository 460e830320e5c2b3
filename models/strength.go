// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "math"

// Rating is the qualitative bucket a password's effective entropy falls in.
type Rating string

const (
	RatingVeryWeak   Rating = "Very Weak"
	RatingWeak       Rating = "Weak"
	RatingOkay       Rating = "Okay"
	RatingStrong     Rating = "Strong"
	RatingVeryStrong Rating = "Very Strong"
)

// Strength is the result of estimating one password: effective entropy in
// bits (Shannon entropy scaled by length, minus weak-pattern penalties,
// floored at zero) and the rating bucket it maps to.
type Strength struct {
	Bits   float64
	Rating Rating
}

// RatingForBits maps effective entropy bits to a Rating using fixed
// thresholds. NaN is treated as zero bits.
func RatingForBits(bits float64) Rating {
	switch {
	case math.IsNaN(bits) || bits <= 28:
		return RatingVeryWeak
	case bits <= 35:
		return RatingWeak
	case bits <= 59:
		return RatingOkay
	case bits <= 127:
		return RatingStrong
	default:
		return RatingVeryStrong
	}
}
