package main

import (
	"fmt"

	"github.com/jwulff/medscribe/internal/app"
	"github.com/jwulff/medscribe/internal/editor"
	"github.com/jwulff/medscribe/internal/logging"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, logCloser, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	lib, err := loadLibrary(cfg)
	if err != nil {
		return err
	}
	archive, err := openArchive(cfg)
	if err != nil {
		return err
	}
	if archive != nil {
		defer archive.Close()
	}

	capability := detectCapability(cfg, log)
	if !capability.Available() {
		log.Warn().Str("reason", capability.Reason()).Msg("speech capability unavailable")
	}

	ws := editor.New(capability, lib, logging.WithComponent(log, "editor"))
	defer ws.Close()

	model := app.New(ws, app.Options{
		Archive:       archive,
		ExportDir:     cfg.ExportDir,
		DatedFilename: cfg.DatedFilename,
		Printer:       newPrinter(cfg),
		Log:           logging.WithComponent(log, "app"),
	})

	log.Info().Str("version", version).Str("locale", cfg.Locale).Msg("editor starting")
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
