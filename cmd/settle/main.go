package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"

	"github.com/shanem9/crypto-settle/internal/api"
	"github.com/shanem9/crypto-settle/internal/collector"
	"github.com/shanem9/crypto-settle/internal/config"
	"github.com/shanem9/crypto-settle/internal/model"
	"github.com/shanem9/crypto-settle/internal/pricestore"
	"github.com/shanem9/crypto-settle/internal/roster"
	"github.com/shanem9/crypto-settle/internal/settle"
	"github.com/shanem9/crypto-settle/internal/tiebreak"
	"github.com/shanem9/crypto-settle/internal/version"
	"github.com/shanem9/crypto-settle/internal/writer"
)

func main() {
	configPath := flag.String("config", "configs/settle.yaml", "path to config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	runID := uuid.New()
	logger.Info("starting settlement run",
		"version", version.Version,
		"commit", version.Commit,
		"run_id", runID,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	start, eval := cfg.Dates()
	run := model.Run{
		ID:             runID,
		StartDate:      start,
		EvaluationDate: eval,
		Currency:       cfg.Run.Currency,
	}
	logger.Info("configuration loaded",
		"start_date", cfg.Run.StartDate,
		"evaluation_date", cfg.Run.EvaluationDate,
		"currency", run.Currency,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load inputs. Unreadable inputs are the only fatal data condition;
	// everything downstream degrades per participant instead.
	cat, err := roster.LoadCatalog(cfg.Inputs.Catalog)
	if err != nil {
		logger.Error("failed to load asset catalog", "path", cfg.Inputs.Catalog, "error", err)
		os.Exit(1)
	}
	parts, err := roster.LoadParticipants(cfg.Inputs.Participants)
	if err != nil {
		logger.Error("failed to load participants", "path", cfg.Inputs.Participants, "error", err)
		os.Exit(1)
	}
	logger.Info("inputs loaded", "assets", cat.Len(), "participants", len(parts))

	required, unresolved := roster.Resolve(cat, parts)
	for _, sym := range unresolved {
		logger.Warn("participant symbol not in catalog, no prices will be fetched", "symbol", sym)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.UserAgent,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetry(cfg.API.MaxAttempts, cfg.API.RateLimitCooldown),
		api.WithLogger(logger),
	)

	coll := collector.New(collector.Config{
		Currency:     run.Currency,
		Start:        run.StartDate,
		End:          run.EvaluationDate,
		PaceInterval: cfg.API.PaceInterval,
	}, client, logger)

	store := pricestore.New()
	stats, runErr := coll.Run(ctx, required, store)
	logger.Info("price collection finished",
		"fetched", stats.Fetched,
		"failed", stats.Failed,
	)

	// Persist whatever was collected before deciding anything else, so an
	// interrupted run still leaves its price table behind.
	dates := model.DayRange(start, eval)
	if err := store.WriteFile(cfg.Outputs.PriceTable, dates); err != nil {
		logger.Error("failed to write price table", "path", cfg.Outputs.PriceTable, "error", err)
		os.Exit(1)
	}
	logger.Info("price table written", "path", cfg.Outputs.PriceTable, "symbols", store.Len())

	if runErr != nil {
		logger.Error("price collection aborted", "error", runErr)
		os.Exit(1)
	}

	results, exclusions := settle.Compute(parts, store, run.EvaluationDate)
	settle.Rank(results)

	if err := writer.WriteResults(cfg.Outputs.Results, results); err != nil {
		logger.Error("failed to write results", "path", cfg.Outputs.Results, "error", err)
		os.Exit(1)
	}
	if err := writer.WriteExclusions(cfg.Outputs.Exclusions, exclusions); err != nil {
		logger.Error("failed to write exclusions", "path", cfg.Outputs.Exclusions, "error", err)
		os.Exit(1)
	}
	logger.Info("settlement written",
		"results", len(results),
		"excluded", len(exclusions),
	)

	if len(results) == 0 {
		logger.Warn("no rankable participants")
		return
	}

	top := settle.TopTie(results)
	if len(top) > 1 {
		logger.Info("exact tie at the top, gathering intraday evidence",
			"tied", len(top),
			"symbol", top[0].Participant.Symbol,
		)
		resolver := tiebreak.New(client, run.Currency, logger)
		samples, err := resolver.Resolve(ctx, top, cat)
		switch {
		case errors.Is(err, tiebreak.ErrInconsistentTie):
			logger.Error("tie group is inconsistent, evidence skipped", "error", err)
		case err != nil:
			logger.Warn("no tiebreaker data available", "error", err)
		default:
			if err := writer.WriteEvidence(cfg.Outputs.Tiebreak, samples); err != nil {
				logger.Error("failed to write tiebreaker evidence", "path", cfg.Outputs.Tiebreak, "error", err)
				os.Exit(1)
			}
			logger.Info("tiebreaker evidence written",
				"path", cfg.Outputs.Tiebreak,
				"samples", len(samples),
			)
		}
	}

	winner := results[0]
	logger.Info("settlement complete",
		"run_id", runID,
		"winner", winner.Participant.Name,
		"symbol", winner.Participant.Symbol,
		"gain_loss", winner.Formatted,
	)
}
