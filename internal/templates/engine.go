package templates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSelection is returned when an operation needs a selected template.
var ErrNoSelection = errors.New("no template selected")

// Engine tracks the selected template and its variable bindings.
type Engine struct {
	lib      *Library
	selected *Template
	bindings map[string]string
}

// NewEngine returns an engine over lib with nothing selected.
func NewEngine(lib *Library) *Engine {
	if lib == nil {
		lib = NewLibrary()
	}
	return &Engine{lib: lib}
}

// Library exposes the underlying template library.
func (e *Engine) Library() *Library { return e.lib }

// Select makes key the current template and resets bindings to one empty
// value per declared variable.
func (e *Engine) Select(key string) error {
	t, err := e.lib.Get(key)
	if err != nil {
		return err
	}
	e.selected = &t
	e.bindings = make(map[string]string, len(t.Variables))
	for _, v := range t.Variables {
		e.bindings[v] = ""
	}
	return nil
}

// Selected returns the current template.
func (e *Engine) Selected() (Template, bool) {
	if e.selected == nil {
		return Template{}, false
	}
	return *e.selected, true
}

// Clear drops the selection and its bindings.
func (e *Engine) Clear() {
	e.selected = nil
	e.bindings = nil
}

// Bind sets a variable value. Any string is accepted, including empty.
func (e *Engine) Bind(name, value string) error {
	if e.selected == nil {
		return ErrNoSelection
	}
	e.bindings[name] = value
	return nil
}

// Binding returns the current value bound to name.
func (e *Engine) Binding(name string) string {
	return e.bindings[name]
}

// Bindings copies the current bindings.
func (e *Engine) Bindings() map[string]string {
	out := make(map[string]string, len(e.bindings))
	for k, v := range e.bindings {
		out[k] = v
	}
	return out
}

// Apply renders the selected template with the current bindings.
func (e *Engine) Apply() (string, error) {
	if e.selected == nil {
		return "", ErrNoSelection
	}
	return e.selected.Render(e.bindings), nil
}

// Create adds a user template. A key collision is reported as ErrExists so
// the caller can confirm with Replace.
func (e *Engine) Create(name, content string) (Template, error) {
	if strings.TrimSpace(name) == "" {
		return Template{}, ErrEmptyName
	}
	t := New(name, content)
	if err := e.lib.Add(t); err != nil {
		return Template{}, fmt.Errorf("create %q: %w", name, err)
	}
	return t, nil
}

// Replace adds a user template, overwriting any template with the same key.
func (e *Engine) Replace(name, content string) (Template, error) {
	if strings.TrimSpace(name) == "" {
		return Template{}, ErrEmptyName
	}
	t := New(name, content)
	e.lib.Put(t)
	if e.selected != nil && e.selected.Key == t.Key {
		e.Clear()
	}
	return t, nil
}
