package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/soocke/voc-annotator-go/app"
	"github.com/soocke/voc-annotator-go/config"
)

func main() {
	folder := flag.String("folder", "", "path to the folder in which the images to be annotated are stored")
	label := flag.String("label", "", "object class label applied to every drawn box")
	cfgPath := flag.String("config", "", "optional path to a JSON config file")
	debug := flag.Bool("debug", false, "enable debug logging and runtime metrics")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)

	if *folder == "" || *label == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	if *debug {
		cfg.Debug = true
	}

	application, err := app.New(*folder, *label, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	application.Start()
}
