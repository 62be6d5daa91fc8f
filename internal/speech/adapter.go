package speech

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Sink receives finalized utterances.
type Sink func(text string)

// Adapter drives a recognizer on behalf of the editor. It is not safe for
// concurrent use; call it from the UI loop only.
type Adapter struct {
	capability Capability
	sink       Sink
	log        zerolog.Logger

	recording bool
	partial   string

	// End events still owed by recognizer sessions we stopped ourselves.
	pendingEnds int
}

// NewAdapter returns an idle adapter that delivers final text to sink.
func NewAdapter(c Capability, sink Sink, log zerolog.Logger) *Adapter {
	return &Adapter{capability: c, sink: sink, log: log}
}

// Available reports whether recording can be started at all.
func (a *Adapter) Available() bool { return a.capability.Available() }

// UnavailableReason explains a missing capability.
func (a *Adapter) UnavailableReason() string { return a.capability.Reason() }

// Recording reports the logical recording flag.
func (a *Adapter) Recording() bool { return a.recording }

// Partial returns the latest interim text for display.
func (a *Adapter) Partial() string { return a.partial }

// Events returns the recognizer's event stream, or nil when unavailable.
func (a *Adapter) Events() <-chan Event {
	rec, ok := a.capability.Recognizer()
	if !ok {
		return nil
	}
	return rec.Events()
}

// Start begins continuous capture.
func (a *Adapter) Start() error {
	rec, ok := a.capability.Recognizer()
	if !ok {
		return fmt.Errorf("%w: %s", ErrCapabilityUnavailable, a.capability.Reason())
	}
	if a.recording {
		return nil
	}
	if err := rec.Start(); err != nil {
		a.recording = false
		a.log.Warn().Err(err).Msg("recognizer start failed")
		return fmt.Errorf("%w: %v", ErrStart, err)
	}
	a.recording = true
	a.log.Info().Msg("recording started")
	return nil
}

// Stop ends capture immediately.
func (a *Adapter) Stop() error {
	rec, ok := a.capability.Recognizer()
	if !ok || !a.recording {
		a.recording = false
		return nil
	}
	a.recording = false
	a.partial = ""
	a.pendingEnds++
	a.log.Info().Msg("recording stopped")
	return rec.Stop()
}

// Toggle starts or stops capture.
func (a *Adapter) Toggle() error {
	if a.recording {
		return a.Stop()
	}
	return a.Start()
}

// Handle applies one recognizer event. Finalized text goes to the sink; a
// session end while recording triggers one restart, unless it is the end of
// a session closed by Stop; an error event stops recording without retry.
func (a *Adapter) Handle(ev Event) error {
	switch ev.Type {
	case EventResult:
		text := ev.Transcript()
		if !ev.Final {
			if a.recording {
				a.partial = text
			}
			return nil
		}
		a.partial = ""
		if text != "" && a.sink != nil {
			a.sink(text)
		}
		return nil

	case EventEnd:
		a.partial = ""
		if a.pendingEnds > 0 {
			a.pendingEnds--
			return nil
		}
		if !a.recording {
			return nil
		}
		rec, _ := a.capability.Recognizer()
		if err := rec.Start(); err != nil {
			a.recording = false
			a.log.Error().Err(err).Msg("restart after session end failed")
			return fmt.Errorf("%w: %v", ErrUnexpectedTermination, err)
		}
		a.log.Debug().Msg("session ended, restarted")
		return nil

	case EventError:
		a.partial = ""
		a.recording = false
		a.log.Error().Str("message", ev.Message).Msg("recognition error")
		return fmt.Errorf("%w: %s", ErrRecognition, ev.Message)
	}

	return nil
}

// Close stops an active session and releases the recognizer.
func (a *Adapter) Close() error {
	rec, ok := a.capability.Recognizer()
	if !ok {
		return nil
	}
	if a.recording {
		a.recording = false
		_ = rec.Stop()
	}
	return rec.Close()
}
