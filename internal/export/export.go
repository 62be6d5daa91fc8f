// Package export renders the four report sections as a plain-text report, a
// printable HTML document, and files on disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jwulff/medscribe/internal/transcript"
)

// Title heads every exported report.
const Title = "Medical Transcription Report"

// DefaultFilename is used for saved text reports.
const DefaultFilename = "medical-transcription.txt"

// Document is anything that can provide text for each section.
type Document interface {
	Get(transcript.Section) string
}

// SectionText returns the section's text, or its "not recorded" placeholder
// when empty. Exports never render a silent blank.
func SectionText(doc Document, sec transcript.Section) string {
	text := strings.TrimSpace(doc.Get(sec))
	if text == "" {
		return sec.EmptyText()
	}
	return text
}

// Text renders the plain-text report with fixed headings in fixed order.
func Text(doc Document) string {
	var b strings.Builder
	b.WriteString(Title)
	b.WriteString("\n")
	for _, sec := range transcript.All() {
		fmt.Fprintf(&b, "\n%s:\n%s\n", sec.Heading(), SectionText(doc, sec))
	}
	return b.String()
}

// Filename returns the static report filename, or a date-stamped one.
func Filename(dated bool, now time.Time) string {
	if !dated {
		return DefaultFilename
	}
	return fmt.Sprintf("medical-transcription-%s.txt", now.Format("2006-01-02"))
}

// Save writes the text report to dir/name and returns the written path.
func Save(dir, name string, doc Document) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(Text(doc)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
