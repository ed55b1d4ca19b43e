// Package outcome persists user-tagged signal results to a flat JSON log
// and summarizes them into a win-rate report.
package outcome

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"zerohero/models"
)

// Store is an append-only log over a single JSON file holding an array of
// records. Every append reads the whole file, appends in memory, and
// rewrites the whole file. The mutex serializes appends within this
// process only; two processes racing an append can still lose a write
// (last full rewrite wins). Known limitation, acceptable for a single
// operator.
type Store struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewStore creates a store over the given log path. The file is created
// lazily on first append.
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		logger: log.With().Str("component", "outcome_store").Logger(),
	}
}

// Append adds one record to the log.
func (s *Store) Append(rec models.OutcomeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	records = append(records, rec)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
	}

	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding outcome log: %w", err)
	}
	if err := os.WriteFile(s.path, body, 0o644); err != nil {
		return fmt.Errorf("writing outcome log: %w", err)
	}

	s.logger.Info().
		Str("index", rec.Index).
		Str("type", rec.OptionType).
		Float64("strike", rec.Strike).
		Str("result", rec.Result).
		Int("total", len(records)).
		Msg("Outcome recorded")
	return nil
}

// LoadAll returns every record in insertion order. A missing log file is
// normal-absent and yields an empty slice; a corrupt file is an error.
func (s *Store) LoadAll() ([]models.OutcomeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]models.OutcomeRecord, error) {
	body, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading outcome log: %w", err)
	}

	var records []models.OutcomeRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("parsing outcome log: %w", err)
	}
	return records, nil
}
