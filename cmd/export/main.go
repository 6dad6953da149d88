package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golf-atlas/config"
	"golf-atlas/services"
	"golf-atlas/source"
	"golf-atlas/storage"
	"golf-atlas/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetDebug(cfg.Debug)

	var (
		src = flag.String("source", cfg.SourceURL, "CSV URL or local path to load")
		out = flag.String("out", cfg.CSVExportPath, "output path for the normalized CSV")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()

	loader := services.NewLoader(source.NewFetcher(cfg.FetchTimeout, logger), logger, cfg.FetchTimeout)
	snap, err := loader.Load(ctx, *src, "")
	if err != nil {
		logger.Error("%s", services.UserMessage(err))
		os.Exit(1)
	}
	if snap.Stats.Empty() {
		logger.Error("%s", services.EmptyDatasetMessage)
		os.Exit(1)
	}

	csvWriter, err := storage.NewCSVWriter(*out)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	sinks, err := storage.OpenSinks(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open storage sinks: %v", err)
		os.Exit(1)
	}
	defer sinks.Close()

	if err := storage.NewMultiWriter(cfg.MaxConcurrency, csvWriter, sinks).WriteSnapshot(snap); err != nil {
		logger.Error("Export failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Normalized courses saved to %s", *out)

	courses := snap.Courses
	if reader, ok := sinks.Reader(); ok {
		if stored, err := reader.FetchAll(); err != nil {
			logger.Warn("Failed to read courses back for insights: %v", err)
		} else {
			courses = stored
		}
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(insightSvc.Generate(courses))

	fmt.Printf("  Done. %d courses → %s\n\n", len(snap.Courses), *out)
}
