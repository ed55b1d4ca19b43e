package signal

import (
	"math"

	"zerohero/models"
)

// Scoring weights and normalization caps of the confidence heuristic.
const (
	weightProximity = 0.3
	weightOI        = 0.3
	weightVolume    = 0.2
	weightExpiry    = 0.2

	oiCap     = 5000
	volumeCap = 500
)

// Score assigns a candidate its heuristic confidence percentage from four
// factors, each clamped to [0,1] before weighting:
//
//	proximity: closer-to-money scores higher even after passing the OTM filter
//	open interest and volume: saturating at oiCap / volumeCap
//	expiry: step function on days to expiry (0 -> 1, 1 -> 0.5, else 0.2)
//
// The weighted sum is scaled to a percentage and rounded to one decimal.
func Score(c models.Candidate, underlying float64, daysToExpiry int, otmOffset float64) float64 {
	proximity := clamp01(1 - math.Abs(c.Strike-underlying)/(2*otmOffset))
	oiFactor := clamp01(c.OpenInterest / oiCap)
	volumeFactor := clamp01(c.Volume / volumeCap)

	expiryFactor := 0.2
	switch daysToExpiry {
	case 0:
		expiryFactor = 1
	case 1:
		expiryFactor = 0.5
	}

	score := weightProximity*proximity +
		weightOI*oiFactor +
		weightVolume*volumeFactor +
		weightExpiry*expiryFactor

	return Round1(score * 100)
}

// ScoreAll fills in the Confidence of every candidate in place and returns
// the slice for convenience.
func ScoreAll(candidates []models.Candidate, underlying float64, daysToExpiry int, otmOffset float64) []models.Candidate {
	for i := range candidates {
		candidates[i].Confidence = Score(candidates[i], underlying, daysToExpiry, otmOffset)
	}
	return candidates
}

// Round1 rounds to one decimal place using round-half-to-even
// (banker's rounding).
func Round1(x float64) float64 {
	return math.RoundToEven(x*10) / 10
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
