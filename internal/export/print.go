package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Printer sends a rendered HTML document to a print surface.
type Printer interface {
	Print(ctx context.Context, doc []byte) error
}

// OpenPrinter writes the document to a temporary file and hands it to an
// external program, by default the platform's browser opener. The document
// triggers the print dialog itself.
type OpenPrinter struct {
	Dir     string   // temp dir; empty uses os.TempDir
	Command []string // program and leading args; the file path is appended
}

// DefaultOpenCommand returns the platform opener.
func DefaultOpenCommand() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"cmd", "/c", "start", ""}
	default:
		return []string{"xdg-open"}
	}
}

func (p OpenPrinter) Print(ctx context.Context, doc []byte) error {
	f, err := os.CreateTemp(p.Dir, "medical-transcription-*.html")
	if err != nil {
		return fmt.Errorf("create print file: %w", err)
	}
	if _, err := f.Write(doc); err != nil {
		f.Close()
		return fmt.Errorf("write print file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close print file: %w", err)
	}

	command := p.Command
	if len(command) == 0 {
		command = DefaultOpenCommand()
	}
	args := append(append([]string{}, command[1:]...), f.Name())
	cmd := exec.CommandContext(ctx, command[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("open print surface: %w: %s", err, out)
	}
	return nil
}
