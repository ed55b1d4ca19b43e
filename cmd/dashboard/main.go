package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"zerohero/internal/api/breeze"
	"zerohero/internal/api/nse"
	"zerohero/internal/archive"
	"zerohero/internal/config"
	"zerohero/internal/notify"
	"zerohero/internal/outcome"
	"zerohero/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Loading config failed")
	}

	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	var fetcher web.Fetcher
	switch cfg.DataSource {
	case "breeze":
		fetcher = breeze.NewClient(breeze.ClientOptions{
			BaseURL:        cfg.BreezeBaseURL,
			APIKey:         cfg.BreezeAPIKey,
			SessionToken:   cfg.BreezeSession,
			RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
			RequestsPerSec: cfg.RequestsPerSec,
		})
	default:
		fetcher = nse.NewClient(nse.ClientOptions{
			BaseURL:        cfg.NSEBaseURL,
			RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
			RequestsPerSec: cfg.RequestsPerSec,
		})
	}

	store := outcome.NewStore(cfg.OutcomePath)

	var db *archive.DB
	if cfg.DBHost != "" {
		db, err = archive.New(archive.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Connecting to archive database failed")
		}
		defer db.Close()
	}

	var notifier *notify.Telegram
	if cfg.TelegramToken != "" {
		notifier, err = notify.New(cfg.TelegramToken, cfg.TelegramChatID, cfg.AlertMinConfidence)
		if err != nil {
			log.Fatal().Err(err).Msg("Initializing Telegram notifier failed")
		}
	}

	server := web.NewServer(cfg, fetcher, store, db, notifier)

	mux := http.NewServeMux()
	server.Routes(mux)

	log.Info().
		Str("addr", cfg.ListenAddr).
		Str("source", cfg.DataSource).
		Msg("Dashboard starting")
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
