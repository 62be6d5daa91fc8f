// Package db provides the local SQLite archive of saved reports.
package db

import (
	"time"

	"github.com/jwulff/medscribe/internal/transcript"
)

// Report is one archived snapshot of the four sections.
type Report struct {
	ID               string
	Title            string
	Advice           string
	Operation        string
	PostOperative    string
	DischargeSummary string
	CreatedAt        time.Time
}

// Get returns the archived text of a section.
func (r Report) Get(sec transcript.Section) string {
	switch sec {
	case transcript.Advice:
		return r.Advice
	case transcript.Operation:
		return r.Operation
	case transcript.PostOperative:
		return r.PostOperative
	case transcript.DischargeSummary:
		return r.DischargeSummary
	}
	return ""
}
