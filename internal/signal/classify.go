// Package signal implements the zero-hero classifier and confidence scorer.
package signal

import "zerohero/models"

// Classify scans every strike of the snapshot and emits an unscored
// candidate for each call whose last price is at or below priceCeiling with
// a strike above underlying+otmOffset, and each put with the symmetric
// condition below. Snapshot strike order is preserved; a strike may emit
// both a call and a put candidate. A missing leg never emits.
func Classify(snap *models.OptionSnapshot, index string, priceCeiling, otmOffset float64) []models.Candidate {
	var candidates []models.Candidate
	underlying := snap.UnderlyingValue

	for _, strike := range snap.Strikes {
		if leg := strike.Call; leg != nil &&
			leg.LastPrice <= priceCeiling &&
			strike.StrikePrice > underlying+otmOffset {
			candidates = append(candidates, models.Candidate{
				Index:        index,
				OptionType:   models.OptionTypeCall,
				Strike:       strike.StrikePrice,
				LastPrice:    leg.LastPrice,
				OpenInterest: leg.OpenInterest,
				Volume:       leg.Volume,
			})
		}
		if leg := strike.Put; leg != nil &&
			leg.LastPrice <= priceCeiling &&
			strike.StrikePrice < underlying-otmOffset {
			candidates = append(candidates, models.Candidate{
				Index:        index,
				OptionType:   models.OptionTypePut,
				Strike:       strike.StrikePrice,
				LastPrice:    leg.LastPrice,
				OpenInterest: leg.OpenInterest,
				Volume:       leg.Volume,
			})
		}
	}

	return candidates
}
