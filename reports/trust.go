// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reports

import (
	"math"

	"github.com/danielhkuo/biryani-lagbe/models"
)

// NeutralTrust is the score of a report nobody has voted on.
const NeutralTrust = 50

const (
	highTrustFrom   = 80
	mediumTrustFrom = 50
)

// TrustScore returns round(100*agree/(agree+disagree)) clamped to [0,100],
// or NeutralTrust when there are no votes.
func TrustScore(agree, disagree int) int {
	total := agree + disagree
	if total <= 0 {
		return NeutralTrust
	}
	score := int(math.Round(100 * float64(agree) / float64(total)))
	return min(max(score, 0), 100)
}

// TrustLevel bands a score the way the map client colours markers.
func TrustLevel(score int) string {
	switch {
	case score >= highTrustFrom:
		return models.TrustHigh
	case score >= mediumTrustFrom:
		return models.TrustMedium
	default:
		return models.TrustLow
	}
}

// SetCounts stores agree/disagree counts on r and recomputes its trust.
func SetCounts(r *models.Report, agree, disagree int) {
	r.AgreeCount = agree
	r.DisagreeCount = disagree
	r.TrustScore = TrustScore(agree, disagree)
	r.TrustLevel = TrustLevel(r.TrustScore)
}
