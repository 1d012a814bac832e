// Package app assembles the session, window and supporting services.
package app

import (
	"log/slog"
	"time"

	"github.com/soocke/voc-annotator-go/config"
	"github.com/soocke/voc-annotator-go/debug"
	"github.com/soocke/voc-annotator-go/domain/annotator"
	"github.com/soocke/voc-annotator-go/ui/view"
)

// App wires the annotation session to its window.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Session *annotator.Session
	Window  *view.AnnotatorWindow
}

// New constructs the session for the given image folder and label and builds
// the window around it. Construction fails fast on a bad folder, a folder
// without images or an unreadable first image.
func New(folder, label string, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	session, err := annotator.NewSession(folder, label, cfg, logger)
	if err != nil {
		return nil, err
	}
	session.AddListener(func(prev, next int) {
		logger.Debug("image transition", "from", prev, "to", next)
	})

	if cfg.Debug {
		debug.StartRuntimeStatsLogger(2*time.Second, logger)
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Session: session,
		Window:  view.NewAnnotatorWindow(session, cfg, logger),
	}, nil
}

// Start enters the window's event loop. It returns after the window has been
// destroyed and the session's final save has run.
func (a *App) Start() {
	a.Window.Run()
}
