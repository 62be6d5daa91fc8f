package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "warn")

	l.Info().Msg("quiet")
	l.Warn().Msg("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestNewWriterBadLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "shouty")

	l.Debug().Msg("hidden")
	l.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug should be filtered at default level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info should be written at default level")
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := WithComponent(NewWriter(&buf, "info"), "speech")
	l.Info().Msg("started")

	if !strings.Contains(buf.String(), "component=speech") {
		t.Errorf("component field missing: %q", buf.String())
	}
}

func TestNewWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, closer, err := New(Config{Dir: dir, Level: "debug"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug().Msg("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q", data)
	}
}

func TestNewWithoutDirDiscards(t *testing.T) {
	l, closer, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()
	l.Info().Msg("nowhere")
}
