// Command normalize turns a raw entrants export into the canonical
// participant list consumed by the settlement run: it filters ineligible
// ticket types, resolves free-text coin choices against the asset catalog,
// and enforces the per-symbol entry cap.
package main

import (
	"flag"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/shanem9/crypto-settle/internal/roster"
	"github.com/shanem9/crypto-settle/internal/version"
	"github.com/shanem9/crypto-settle/internal/writer"
)

func main() {
	catalogPath := flag.String("catalog", "cryptoList.csv", "asset catalog CSV")
	inPath := flag.String("in", "rawEntrants.csv", "raw entrants export CSV")
	outPath := flag.String("out", "attendeeList.csv", "canonical participant list CSV")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting normalizer",
		"version", version.Version,
		"catalog", *catalogPath,
		"in", *inPath,
		"out", *outPath,
	)

	cat, err := roster.LoadCatalog(*catalogPath)
	if err != nil {
		logger.Error("failed to load asset catalog", "path", *catalogPath, "error", err)
		os.Exit(1)
	}
	raws, err := roster.LoadEntrants(*inPath)
	if err != nil {
		logger.Error("failed to load raw entrants", "path", *inPath, "error", err)
		os.Exit(1)
	}
	logger.Info("inputs loaded", "assets", cat.Len(), "entrants", len(raws))

	parts, dropped := roster.Normalize(raws, cat)
	for _, d := range dropped {
		logger.Warn("entrant dropped",
			"name", d.Entrant.Name,
			"coin", d.Entrant.Coin,
			"reason", d.Reason,
		)
	}

	if err := writer.WriteParticipants(*outPath, parts); err != nil {
		logger.Error("failed to write participant list", "path", *outPath, "error", err)
		os.Exit(1)
	}

	logger.Info("participant list written",
		"path", *outPath,
		"kept", len(parts),
		"dropped", len(dropped),
	)
}
