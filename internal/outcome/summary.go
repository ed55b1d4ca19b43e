package outcome

import (
	"zerohero/internal/signal"
	"zerohero/models"
)

// ResultCount is a success/fail pair.
type ResultCount struct {
	Successes int
	Fails     int
}

// BandCount is the result split within one confidence band.
type BandCount struct {
	Label     string
	Successes int
	Fails     int
}

// Summary is the aggregate view over the whole outcome log. It is
// recomputed from the full collection on every read; no counters are
// maintained incrementally.
type Summary struct {
	Total     int
	Successes int
	Fails     int
	WinRate   float64 // percent, one decimal place
	ByIndex   map[string]ResultCount
	Bands     []BandCount
}

// Confidence bands for the confidence-vs-result breakdown.
var bandLabels = []string{"0-50", "50-75", "75-100"}

// Summarize computes the win-rate report over the given records.
func Summarize(records []models.OutcomeRecord) Summary {
	summary := Summary{
		Total:   len(records),
		ByIndex: make(map[string]ResultCount),
		Bands: []BandCount{
			{Label: bandLabels[0]},
			{Label: bandLabels[1]},
			{Label: bandLabels[2]},
		},
	}

	for _, rec := range records {
		success := rec.Result == models.ResultSuccess
		if success {
			summary.Successes++
		} else {
			summary.Fails++
		}

		byIndex := summary.ByIndex[rec.Index]
		if success {
			byIndex.Successes++
		} else {
			byIndex.Fails++
		}
		summary.ByIndex[rec.Index] = byIndex

		band := &summary.Bands[bandIndex(rec.Confidence)]
		if success {
			band.Successes++
		} else {
			band.Fails++
		}
	}

	if summary.Total > 0 {
		summary.WinRate = signal.Round1(float64(summary.Successes) / float64(summary.Total) * 100)
	}
	return summary
}

func bandIndex(confidence float64) int {
	switch {
	case confidence < 50:
		return 0
	case confidence < 75:
		return 1
	default:
		return 2
	}
}
