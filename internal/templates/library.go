package templates

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Library errors.
var (
	ErrNotFound  = errors.New("template not found")
	ErrExists    = errors.New("template already exists")
	ErrEmptyName = errors.New("template name is empty")
)

//go:embed builtin.yaml
var builtinYAML []byte

type libraryFile struct {
	Templates []Template `yaml:"templates"`
}

// Library stores templates keyed by slug, remembering insertion order.
type Library struct {
	byKey map[string]Template
	order []string
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{byKey: map[string]Template{}}
}

// Builtins returns a library holding the bundled operative-note templates.
func Builtins() (*Library, error) {
	l := NewLibrary()
	if err := l.load(builtinYAML, SourceBuiltin); err != nil {
		return nil, fmt.Errorf("load builtin templates: %w", err)
	}
	return l, nil
}

// LoadFile merges templates from a YAML file. Entries replace templates with
// the same key.
func (l *Library) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read templates: %w", err)
	}
	if err := l.load(data, path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (l *Library) load(data []byte, source string) error {
	var f libraryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	for i, t := range f.Templates {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyName)
		}
		key := t.Key
		if key == "" {
			key = Slug(t.Name)
		}
		tmpl := New(t.Name, t.Content)
		tmpl.Key = key
		tmpl.Description = t.Description
		tmpl.Source = source
		l.Put(tmpl)
	}
	return nil
}

// Get returns the template stored under key.
func (l *Library) Get(key string) (Template, error) {
	t, ok := l.byKey[key]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return t, nil
}

// Has reports whether key is taken.
func (l *Library) Has(key string) bool {
	_, ok := l.byKey[key]
	return ok
}

// Add stores t, refusing to replace an existing key.
func (l *Library) Add(t Template) error {
	if l.Has(t.Key) {
		return fmt.Errorf("%w: %q", ErrExists, t.Key)
	}
	l.Put(t)
	return nil
}

// Put stores t, replacing any template with the same key.
func (l *Library) Put(t Template) {
	if !l.Has(t.Key) {
		l.order = append(l.order, t.Key)
	}
	l.byKey[t.Key] = t
}

// List returns templates in insertion order.
func (l *Library) List() []Template {
	out := make([]Template, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.byKey[k])
	}
	return out
}

// Len is the number of templates.
func (l *Library) Len() int { return len(l.order) }
