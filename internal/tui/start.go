package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/satchel/internal/config"
	"github.com/tatianab/satchel/internal/game"
	"github.com/tatianab/satchel/internal/models"
)

// Start runs the game in this terminal using configuration from the
// environment.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return StartWith(cfg)
}

// StartWith runs the game in this terminal. Logs go to cfg.LogFile since the
// screen belongs to the game.
func StartWith(cfg *config.Config) error {
	f, err := tea.LogToFile(cfg.LogFile, "satchel")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	content, err := models.LoadContent(cfg.ContentPath)
	if err != nil {
		return err
	}
	s, err := game.NewSession(content, logger)
	if err != nil {
		return err
	}
	logger.Info("session started", "title", content.Title)

	app, err := New(s, WithSaveDir(cfg.SaveDir))
	if err != nil {
		return err
	}
	return Run(app, tea.WithAltScreen())
}
