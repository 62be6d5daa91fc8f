// Package editor holds the application state shared by the terminal UI:
// the four report sections, the active tab, the speech adapter and the
// template engine.
package editor

import (
	"github.com/jwulff/medscribe/internal/speech"
	"github.com/jwulff/medscribe/internal/templates"
	"github.com/jwulff/medscribe/internal/transcript"
	"github.com/rs/zerolog"
)

// Workspace is the single owner of editor state. It is driven from the UI
// loop and is not safe for concurrent use.
type Workspace struct {
	store  *transcript.Store
	active transcript.Section
	speech *speech.Adapter
	engine *templates.Engine
	log    zerolog.Logger
}

// New builds a workspace around a speech capability and a template library.
// The Advice section starts active.
func New(c speech.Capability, lib *templates.Library, log zerolog.Logger) *Workspace {
	w := &Workspace{
		store:  transcript.NewStore(),
		active: transcript.Advice,
		engine: templates.NewEngine(lib),
		log:    log,
	}
	w.speech = speech.NewAdapter(c, w.capture, log.With().Str("component", "speech").Logger())
	return w
}

// capture appends a finalized utterance to whichever section is active now.
func (w *Workspace) capture(text string) {
	w.store.Append(w.active, text)
	w.log.Debug().Str("section", w.active.Key()).Int("chars", len(text)).Msg("captured")
}

// Store exposes the section texts, e.g. for export.
func (w *Workspace) Store() *transcript.Store { return w.store }

// Active returns the section receiving edits and dictation.
func (w *Workspace) Active() transcript.Section { return w.active }

// SetActive switches tabs. Invalid sections are ignored.
func (w *Workspace) SetActive(sec transcript.Section) {
	if !sec.Valid() {
		return
	}
	w.active = sec
}

// NextSection moves to the following tab, wrapping around.
func (w *Workspace) NextSection() transcript.Section {
	w.active = w.active.Next()
	return w.active
}

// PrevSection moves to the preceding tab, wrapping around.
func (w *Workspace) PrevSection() transcript.Section {
	w.active = w.active.Prev()
	return w.active
}

// Text returns a section's current text.
func (w *Workspace) Text(sec transcript.Section) string { return w.store.Get(sec) }

// Edit replaces a section's text with a manual edit.
func (w *Workspace) Edit(sec transcript.Section, text string) { w.store.Set(sec, text) }

// Get implements export.Document.
func (w *Workspace) Get(sec transcript.Section) string { return w.store.Get(sec) }

func (w *Workspace) SpeechAvailable() bool           { return w.speech.Available() }
func (w *Workspace) SpeechUnavailableReason() string { return w.speech.UnavailableReason() }
func (w *Workspace) Recording() bool                 { return w.speech.Recording() }
func (w *Workspace) Partial() string                 { return w.speech.Partial() }

// SpeechEvents is the recognizer stream the UI pumps into HandleSpeech.
func (w *Workspace) SpeechEvents() <-chan speech.Event { return w.speech.Events() }

func (w *Workspace) StartRecording() error  { return w.speech.Start() }
func (w *Workspace) StopRecording() error   { return w.speech.Stop() }
func (w *Workspace) ToggleRecording() error { return w.speech.Toggle() }

// HandleSpeech applies one recognizer event.
func (w *Workspace) HandleSpeech(ev speech.Event) error { return w.speech.Handle(ev) }

// Templates returns the template engine.
func (w *Workspace) Templates() *templates.Engine { return w.engine }

// SelectTemplate chooses a template and resets its bindings.
func (w *Workspace) SelectTemplate(key string) error { return w.engine.Select(key) }

// BindVariable sets one template variable.
func (w *Workspace) BindVariable(name, value string) error { return w.engine.Bind(name, value) }

// ApplyTemplate renders the selected template over the Operation section
// and returns the rendered text.
func (w *Workspace) ApplyTemplate() (string, error) {
	out, err := w.engine.Apply()
	if err != nil {
		return "", err
	}
	w.store.Set(transcript.Operation, out)
	if t, ok := w.engine.Selected(); ok {
		w.log.Info().Str("template", t.Key).Msg("template applied")
	}
	return out, nil
}

// CreateTemplate adds a user template. A key collision returns
// templates.ErrExists; ReplaceTemplate overwrites.
func (w *Workspace) CreateTemplate(name, content string) (templates.Template, error) {
	return w.engine.Create(name, content)
}

// ReplaceTemplate stores a template, overwriting any with the same key.
func (w *Workspace) ReplaceTemplate(name, content string) (templates.Template, error) {
	return w.engine.Replace(name, content)
}

// Close stops capture and releases the recognizer.
func (w *Workspace) Close() error {
	return w.speech.Close()
}
