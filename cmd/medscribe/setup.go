package main

import (
	"fmt"
	"io"

	"github.com/jwulff/medscribe/internal/config"
	"github.com/jwulff/medscribe/internal/db"
	"github.com/jwulff/medscribe/internal/export"
	"github.com/jwulff/medscribe/internal/logging"
	"github.com/jwulff/medscribe/internal/speech"
	"github.com/jwulff/medscribe/internal/templates"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper())
}

func openLogger(cfg config.Config) (zerolog.Logger, io.Closer, error) {
	return logging.New(logging.Config{Dir: cfg.LogDir, Level: cfg.LogLevel})
}

// loadLibrary returns the builtin templates merged with the user's file.
func loadLibrary(cfg config.Config) (*templates.Library, error) {
	lib, err := templates.Builtins()
	if err != nil {
		return nil, err
	}
	if cfg.TemplatesFile != "" {
		if err := lib.LoadFile(cfg.TemplatesFile); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// openArchive opens the report archive, or returns nil when it is disabled.
func openArchive(cfg config.Config) (*db.Store, error) {
	if cfg.ArchivePath == "" {
		return nil, nil
	}
	store, err := db.Open(cfg.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return store, nil
}

func detectCapability(cfg config.Config, log zerolog.Logger) speech.Capability {
	if cfg.Recognizer == config.RecognizerNone {
		return speech.Unavailable("speech recognition disabled in configuration")
	}
	return speech.DetectDaemon(cfg.SocketPath, cfg.Locale, logging.WithComponent(log, "recognizer"))
}

func newPrinter(cfg config.Config) export.Printer {
	return export.OpenPrinter{Command: cfg.PrintCommand}
}
