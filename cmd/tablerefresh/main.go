// Command tablerefresh updates the running gain/loss table with today's
// spot prices. It fetches one simple-price quote per catalog asset and
// rewrites the table document in place.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/shanem9/crypto-settle/internal/api"
	"github.com/shanem9/crypto-settle/internal/config"
	"github.com/shanem9/crypto-settle/internal/roster"
	"github.com/shanem9/crypto-settle/internal/table"
	"github.com/shanem9/crypto-settle/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/settle.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting table refresh",
		"version", version.Version,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cat, err := roster.LoadCatalog(cfg.Inputs.Catalog)
	if err != nil {
		logger.Error("failed to load asset catalog", "path", cfg.Inputs.Catalog, "error", err)
		os.Exit(1)
	}
	data, err := table.Load(cfg.Outputs.TableData)
	if err != nil {
		logger.Error("failed to load table data", "path", cfg.Outputs.TableData, "error", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.UserAgent,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetry(cfg.API.MaxAttempts, cfg.API.RateLimitCooldown),
		api.WithLogger(logger),
	)

	// One batched quote request covers the whole catalog.
	assets := cat.Assets()
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}

	prices, err := client.GetSimplePrices(ctx, ids, cfg.Run.Currency)
	if err != nil {
		logger.Error("failed to fetch spot prices", "error", err)
		os.Exit(1)
	}

	today := time.Now().UTC()
	updated := 0
	for _, a := range assets {
		price, ok := prices.Price(a.ID, cfg.Run.Currency)
		if !ok {
			logger.Warn("no spot price returned, entry unchanged",
				"symbol", a.Symbol,
				"coin_id", a.ID,
			)
			continue
		}
		if data.Refresh(a.Symbol, price, today) {
			updated++
		}
	}

	if err := data.Save(cfg.Outputs.TableData); err != nil {
		logger.Error("failed to write table data", "path", cfg.Outputs.TableData, "error", err)
		os.Exit(1)
	}

	logger.Info("table refresh complete",
		"path", cfg.Outputs.TableData,
		"entries", len(data),
		"updated", updated,
	)
}
