// Package archive keeps a Postgres history of scored candidates per fetch.
// It is optional: scans work without it, and archive failures never fail a
// scan.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"zerohero/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
	logger zerolog.Logger
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{
		DB:     db,
		logger: log.With().Str("component", "archive").Logger(),
	}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS zero_hero_candidates (
			id SERIAL PRIMARY KEY,
			fetched_at TIMESTAMP NOT NULL,
			index_name TEXT NOT NULL,
			option_type TEXT NOT NULL,
			strike DOUBLE PRECISION NOT NULL,
			last_price DOUBLE PRECISION NOT NULL,
			open_interest DOUBLE PRECISION NOT NULL,
			volume DOUBLE PRECISION NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			underlying DOUBLE PRECISION NOT NULL
		)
	`)

	return err
}

// SaveCandidates stores one fetch's scored candidates.
func (db *DB) SaveCandidates(fetchedAt time.Time, underlying float64, candidates []models.Candidate) error {
	for _, c := range candidates {
		_, err := db.Exec(`
			INSERT INTO zero_hero_candidates (
				fetched_at, index_name, option_type, strike,
				last_price, open_interest, volume, confidence, underlying
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			fetchedAt, c.Index, c.OptionType, c.Strike,
			c.LastPrice, c.OpenInterest, c.Volume, c.Confidence, underlying)
		if err != nil {
			return err
		}
	}

	db.logger.Debug().Int("count", len(candidates)).Msg("Archived candidates")
	return nil
}

// CountByIndex returns how many candidates were archived per index.
func (db *DB) CountByIndex() (map[string]int, error) {
	rows, err := db.Query(`
		SELECT index_name, COUNT(*)
		FROM zero_hero_candidates
		GROUP BY index_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var index string
		var count int
		if err := rows.Scan(&index, &count); err != nil {
			return nil, err
		}
		counts[index] = count
	}

	return counts, rows.Err()
}
