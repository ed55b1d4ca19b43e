package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"zerohero/internal/api/breeze"
	"zerohero/internal/api/nse"
	"zerohero/internal/archive"
	"zerohero/internal/config"
	"zerohero/internal/expiry"
	"zerohero/internal/notify"
	"zerohero/internal/signal"
	"zerohero/internal/web"
)

func main() {
	var index string
	flag.StringVar(&index, "index", "NIFTY", "index to scan (NIFTY, BANKNIFTY, FINNIFTY)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Loading config failed")
	}

	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	info, ok := cfg.Indexes[index]
	if !ok {
		log.Fatal().Str("index", index).Msg("Unknown index")
	}

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

	ctx := context.Background()
	today := time.Now()
	expiryDate := expiry.Next(info.ExpiryWeekday, today)
	daysToExpiry := expiry.DaysTo(info.ExpiryWeekday, today)

	snap, err := fetcher.GetOptionChain(ctx, info.Symbol, expiryDate)
	if err != nil {
		log.Fatal().Err(err).Str("index", index).Msg("Fetch failed")
	}

	candidates := signal.Classify(snap, index, cfg.PriceCeiling, cfg.OTMOffset)
	candidates = signal.ScoreAll(candidates, snap.UnderlyingValue, daysToExpiry, cfg.OTMOffset)

	fmt.Printf("%s  underlying=%.2f  expiry=%s (%dd)  signals=%d\n",
		index, snap.UnderlyingValue, expiryDate.Format("2006-01-02"), daysToExpiry, len(candidates))

	if len(candidates) > 0 {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Type", "Strike", "LTP", "OI", "Volume", "Conf %"})
		for _, c := range candidates {
			table.Append([]string{
				c.OptionType,
				fmt.Sprintf("%.0f", c.Strike),
				fmt.Sprintf("%.2f", c.LastPrice),
				fmt.Sprintf("%.0f", c.OpenInterest),
				fmt.Sprintf("%.0f", c.Volume),
				fmt.Sprintf("%.1f", c.Confidence),
			})
		}
		table.Render()
	}

	if cfg.DBHost != "" {
		db, err := archive.New(archive.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			log.Error().Err(err).Msg("Connecting to archive database failed")
		} else {
			defer db.Close()
			if err := db.SaveCandidates(today, snap.UnderlyingValue, candidates); err != nil {
				log.Error().Err(err).Msg("Archiving candidates failed")
			}
		}
	}

	if cfg.TelegramToken != "" {
		notifier, err := notify.New(cfg.TelegramToken, cfg.TelegramChatID, cfg.AlertMinConfidence)
		if err != nil {
			log.Error().Err(err).Msg("Initializing Telegram notifier failed")
		} else if err := notifier.AlertCandidates(index, candidates); err != nil {
			log.Error().Err(err).Msg("Sending alert failed")
		}
	}
}
