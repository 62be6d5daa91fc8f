// Package speech wraps an external continuous speech-recognition capability.
// Recognizers push events; the Adapter turns finalized results into text for
// a caller-supplied sink and keeps a recording session alive across
// spontaneous session ends.
package speech

import (
	"errors"
	"fmt"
	"strings"
)

// Errors surfaced to the editor. None of them are fatal.
var (
	ErrCapabilityUnavailable = errors.New("speech recognition not available")
	ErrRecognition           = errors.New("speech recognition error")
	ErrUnexpectedTermination = errors.New("recording stopped unexpectedly")
	ErrStart                 = errors.New("could not start recording")
)

// EventType distinguishes recognizer events.
type EventType int

const (
	EventResult EventType = iota
	EventEnd
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventResult:
		return "result"
	case EventEnd:
		return "end"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// Event is pushed by a Recognizer.
type Event struct {
	Type EventType
	// Final marks a stable result; interim results may still change.
	Final bool
	// Alternatives are candidate transcriptions, best first.
	Alternatives []string
	// Message describes an EventError.
	Message string
}

// Transcript returns the top alternative, or "" when there is none.
func (e Event) Transcript() string {
	if len(e.Alternatives) == 0 {
		return ""
	}
	return strings.TrimSpace(e.Alternatives[0])
}

// Final builds a finalized result event.
func Final(text string, alternatives ...string) Event {
	return Event{Type: EventResult, Final: true, Alternatives: append([]string{text}, alternatives...)}
}

// Interim builds a non-final result event.
func Interim(text string) Event {
	return Event{Type: EventResult, Alternatives: []string{text}}
}

// End builds a session-end event.
func End() Event { return Event{Type: EventEnd} }

// Failure builds an error event.
func Failure(msg string) Event { return Event{Type: EventError, Message: msg} }

// Recognizer is a continuous speech-recognition session source. Start may be
// called again after the session ends. Events stays valid for the
// recognizer's lifetime.
type Recognizer interface {
	Start() error
	// Stop ends the session; the recognizer reports EventEnd once it has
	// flushed any final results.
	Stop() error
	Events() <-chan Event
	Close() error
}

// Capability is either an available recognizer or the reason there is none.
type Capability struct {
	rec    Recognizer
	reason string
}

// Available wraps a usable recognizer.
func Available(r Recognizer) Capability {
	return Capability{rec: r}
}

// Unavailable records why recognition cannot be used.
func Unavailable(reason string) Capability {
	if reason == "" {
		reason = "speech recognition not supported"
	}
	return Capability{reason: reason}
}

// Recognizer returns the wrapped recognizer, if any.
func (c Capability) Recognizer() (Recognizer, bool) {
	return c.rec, c.rec != nil
}

// Available reports whether a recognizer is present.
func (c Capability) Available() bool { return c.rec != nil }

// Reason is the explanation for an unavailable capability.
func (c Capability) Reason() string { return c.reason }
