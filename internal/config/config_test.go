package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Locale != "en-US" {
		t.Errorf("locale = %q, want en-US", cfg.Locale)
	}
	if cfg.Recognizer != RecognizerDaemon {
		t.Errorf("recognizer = %q", cfg.Recognizer)
	}
	if cfg.SocketPath == "" {
		t.Error("socket path should default")
	}
	if cfg.DatedFilename {
		t.Error("dated filename should default off")
	}
	if cfg.ArchivePath != "" {
		t.Errorf("archive path = %q, want archiving off by default", cfg.ArchivePath)
	}
	if cfg.ExportDir != "." {
		t.Errorf("export dir = %q", cfg.ExportDir)
	}
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("locale", "en-GB")
	v.Set("recognizer", RecognizerNone)
	v.Set("dated_filename", true)
	v.Set("print_command", []string{"lp", "-d", "ward3"})

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Locale != "en-GB" {
		t.Errorf("locale = %q", cfg.Locale)
	}
	if cfg.Recognizer != RecognizerNone {
		t.Errorf("recognizer = %q", cfg.Recognizer)
	}
	if !cfg.DatedFilename {
		t.Error("dated filename should be on")
	}
	if len(cfg.PrintCommand) != 3 || cfg.PrintCommand[0] != "lp" {
		t.Errorf("print command = %q", cfg.PrintCommand)
	}
}

func TestInvalidRecognizer(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("recognizer", "webkit")

	_, err := Load(v)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestEmptyLocale(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("locale", " ")

	if _, err := Load(v); !errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("locale: fr-FR\nexport_dir: /tmp/reports\n"), 0o644)

	v := viper.New()
	Prepare(v, path)
	if err := ReadFile(v); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Locale != "fr-FR" {
		t.Errorf("locale = %q", cfg.Locale)
	}
	if cfg.ExportDir != "/tmp/reports" {
		t.Errorf("export dir = %q", cfg.ExportDir)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MEDSCRIBE_LOCALE", "de-DE")

	v := viper.New()
	Prepare(v, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Locale != "de-DE" {
		t.Errorf("locale = %q, want env override", cfg.Locale)
	}
}
