// Manual order trigger. Deliberately separate from the scan pipeline:
// nothing places an order unless a human runs this.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"zerohero/internal/config"
	"zerohero/internal/order"
)

func main() {
	var (
		symbol     string
		strike     float64
		optionType string
		qty        int
	)
	flag.StringVar(&symbol, "symbol", "", "index symbol (e.g. NIFTY)")
	flag.Float64Var(&strike, "strike", 0, "strike price")
	flag.StringVar(&optionType, "type", "CE", "option type: CE or PE")
	flag.IntVar(&qty, "qty", 0, "quantity")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Loading config failed")
	}

	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	if symbol == "" || strike == 0 || qty == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if cfg.ICICIAPIKey == "" || cfg.ICICIAccessToken == "" {
		log.Fatal().Msg("ICICI_API_KEY and ICICI_ACCESS_TOKEN must be set")
	}

	client := order.NewClient(order.ClientOptions{
		APIKey:      cfg.ICICIAPIKey,
		AccessToken: cfg.ICICIAccessToken,
	})

	resp, err := client.PlaceOrder(context.Background(), order.Request{
		Symbol:     symbol,
		Strike:     strike,
		OptionType: optionType,
		Quantity:   qty,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Placing order failed")
	}

	fmt.Println(string(resp))
}
