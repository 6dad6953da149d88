package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"golf-atlas/config"
	"golf-atlas/preview"
	"golf-atlas/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetDebug(cfg.Debug)

	var (
		pageURL = flag.String("url", cfg.PreviewURL, "map page to render")
		out     = flag.String("out", cfg.PreviewOutput, "output path for the PNG screenshot")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	capturer := preview.New(logger, cfg.ChromeBin, cfg.MaxRetries)
	res, err := capturer.Capture(ctx, *pageURL)
	if err != nil {
		logger.Error("Preview failed: %v", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		logger.Error("Failed to create output dir: %v", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, res.Screenshot, 0o644); err != nil {
		logger.Error("Failed to write screenshot: %v", err)
		os.Exit(1)
	}

	if res.Status != "" {
		logger.Info("Map status: %s", res.Status)
	}
	if res.Markers == 0 && res.Clusters == 0 {
		logger.Warn("Page rendered without any course pins")
	}
	logger.Info("Preview saved to %s", *out)
}
