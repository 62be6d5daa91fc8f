package app

import "github.com/jwulff/medscribe/internal/speech"

// SpeechEventMsg wraps one event from the recognizer stream.
type SpeechEventMsg struct {
	Event speech.Event
}

// SpeechClosedMsg is sent when the recognizer stream ends for good.
type SpeechClosedMsg struct{}

// SavedMsg reports the outcome of a save.
type SavedMsg struct {
	Path     string
	ReportID string // empty when no archive is configured
	Err      error
}

// PrintedMsg reports the outcome of handing the report to the printer.
type PrintedMsg struct {
	Err error
}

// CopiedMsg reports the outcome of a clipboard copy.
type CopiedMsg struct {
	Err error
}

// ClearTransientErrorMsg clears a transient error after a timeout. Seq
// identifies the error it was scheduled for.
type ClearTransientErrorMsg struct {
	Seq int
}
