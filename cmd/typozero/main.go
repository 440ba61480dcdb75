package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/typozero/internal/config"
	"github.com/jask/typozero/internal/database"
	"github.com/jask/typozero/internal/logging"
	"github.com/jask/typozero/internal/service"
	"github.com/jask/typozero/internal/shell"
	"github.com/jask/typozero/internal/shortcut"
	"github.com/jask/typozero/internal/tui"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// leave an editable config behind on first run
	if _, err := os.Stat(config.Path()); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(cfg); err != nil {
			logger.Warn("write default config", zap.Error(err))
		} else {
			logger.Info("wrote default config", zap.String("path", config.Path()))
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	// errors below were already checked by Validate
	mode, _ := cfg.ThemeMode()
	binding, _ := cfg.DefaultShortcut()
	reserved, _ := cfg.ReservedSet()

	prefs := service.NewPreferences(db, logger.Named("preferences"))
	defer prefs.Close()

	mode, binding, err = prefs.Startup(ctx, mode, binding)
	if err != nil {
		logger.Warn("restore preferences", zap.Error(err))
	}

	bridge := &tui.Bridge{}
	feed := &tui.HistoryFeed{}
	sh, err := shell.New(shell.Options{
		StartID:          cfg.UI.StartScreen,
		Theme:            mode,
		Shortcut:         binding,
		Reserved:         reserved,
		RecordTimeout:    cfg.Shortcut.RecordTimeout,
		Scheduler:        shortcut.RealScheduler(),
		Saver:            prefs,
		Logger:           logger.Named("shell"),
		History:          feed.Entries,
		Version:          version,
		OnRecorderChange: bridge.RecorderChanged,
	})
	if err != nil {
		log.Fatalf("shell: %v", err)
	}
	defer sh.Close()

	prefs.OnSaved(bridge.Saved)

	p := tea.NewProgram(tui.New(ctx, tui.Options{
		Shell:   sh,
		History: feed,
		Load:    prefs.Recent,
		Reset:   prefs.Reset,
		Logger:  logger.Named("tui"),
	}), tea.WithAltScreen())
	bridge.Attach(p)

	logger.Info("starting", zap.String("version", version), zap.Stringer("theme", mode), zap.Stringer("shortcut", binding))
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
