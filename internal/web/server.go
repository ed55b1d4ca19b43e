package web

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"zerohero/internal/archive"
	"zerohero/internal/config"
	"zerohero/internal/notify"
	"zerohero/internal/outcome"
)

// Server holds the dashboard's collaborators. Archive and notifier are
// optional; nil disables them.
type Server struct {
	cfg      *config.Config
	fetcher  Fetcher
	store    *outcome.Store
	archive  *archive.DB
	notifier *notify.Telegram
	logger   zerolog.Logger
}

// NewServer creates the dashboard server.
func NewServer(cfg *config.Config, fetcher Fetcher, store *outcome.Store, db *archive.DB, notifier *notify.Telegram) *Server {
	return &Server{
		cfg:      cfg,
		fetcher:  fetcher,
		store:    store,
		archive:  db,
		notifier: notifier,
		logger:   log.With().Str("component", "web").Logger(),
	}
}

// Routes registers all handlers on the mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.HandleDashboard)
	mux.HandleFunc("/outcome", s.HandleOutcome)
	mux.HandleFunc("/report", s.HandleReport)
}
