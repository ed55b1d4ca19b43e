package web

import (
	"context"
	"time"

	"zerohero/internal/outcome"
	"zerohero/models"
)

// Fetcher is any option-chain data source normalized to the canonical
// snapshot (NSE endpoint or the Breeze API).
type Fetcher interface {
	GetOptionChain(ctx context.Context, symbol string, expiry time.Time) (*models.OptionSnapshot, error)
}

// PageData carries everything a page template can render.
type PageData struct {
	Title       string
	CurrentPage string

	// Dashboard
	IndexNames    []string
	SelectedIndex string
	ShowAll       bool
	Fetched       bool
	Underlying    float64
	ExpiryDate    string
	DaysToExpiry  int
	Candidates    []models.Candidate
	Strikes       []models.StrikeRecord
	ReturnTo      string

	// Report
	Summary outcome.Summary

	ErrorMsg string
}
