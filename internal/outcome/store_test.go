package outcome

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zerohero/models"
)

func record(index, optionType string, strike, confidence float64, result string) models.OutcomeRecord {
	return models.OutcomeRecord{
		Candidate: models.Candidate{
			Index:        index,
			OptionType:   optionType,
			Strike:       strike,
			LastPrice:    3.5,
			OpenInterest: 6000,
			Volume:       600,
			Confidence:   confidence,
		},
		Result: result,
		Date:   "2025-06-05",
	}
}

func TestLoadAllMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "log.json"))

	records, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppendRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "log.json"))

	first := record("NIFTY", models.OptionTypeCall, 19750, 81.2, models.ResultSuccess)
	require.NoError(t, store.Append(first))

	records, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, first, records[0])

	second := record("FINNIFTY", models.OptionTypePut, 19000, 42.5, models.ResultFail)
	require.NoError(t, store.Append(second))

	records, err = store.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0])
	assert.Equal(t, second, records[1])
}

func TestAppendCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "log.json")
	store := NewStore(path)

	require.NoError(t, store.Append(record("NIFTY", models.OptionTypeCall, 19750, 81.2, models.ResultSuccess)))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadAllCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(path)
	_, err := store.LoadAll()
	assert.ErrorContains(t, err, "parsing outcome log")
}

func TestSummarize(t *testing.T) {
	records := []models.OutcomeRecord{
		record("NIFTY", models.OptionTypeCall, 19750, 81.2, models.ResultSuccess),
		record("NIFTY", models.OptionTypeCall, 19800, 60.0, models.ResultFail),
		record("BANKNIFTY", models.OptionTypePut, 44000, 42.5, models.ResultSuccess),
		record("NIFTY", models.OptionTypePut, 19000, 75.0, models.ResultFail),
	}

	summary := Summarize(records)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Successes)
	assert.Equal(t, 2, summary.Fails)
	assert.Equal(t, 50.0, summary.WinRate)

	assert.Equal(t, ResultCount{Successes: 1, Fails: 2}, summary.ByIndex["NIFTY"])
	assert.Equal(t, ResultCount{Successes: 1, Fails: 0}, summary.ByIndex["BANKNIFTY"])

	// 42.5 -> 0-50, 60.0 -> 50-75, 81.2 and 75.0 -> 75-100
	assert.Equal(t, BandCount{Label: "0-50", Successes: 1, Fails: 0}, summary.Bands[0])
	assert.Equal(t, BandCount{Label: "50-75", Successes: 0, Fails: 1}, summary.Bands[1])
	assert.Equal(t, BandCount{Label: "75-100", Successes: 1, Fails: 1}, summary.Bands[2])
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.WinRate)
}

func TestSummarizeSingleFailAfterSuccess(t *testing.T) {
	records := []models.OutcomeRecord{
		record("NIFTY", models.OptionTypeCall, 19750, 81.2, models.ResultSuccess),
		record("NIFTY", models.OptionTypeCall, 19800, 60.0, models.ResultFail),
	}
	assert.Equal(t, 50.0, Summarize(records).WinRate)
}
