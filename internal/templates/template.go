// Package templates implements reusable dictation templates with {{name}}
// placeholders: extraction, a keyed library, and an engine that binds
// variables and renders the selected template.
package templates

import (
	"regexp"
	"strings"
)

// Sources recorded on templates.
const (
	SourceBuiltin = "builtin"
	SourceUser    = "user"
)

var (
	placeholderRe = regexp.MustCompile(`\{\{\s*([^{}]*?[^{}\s])\s*\}\}`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Template is a named text pattern with placeholders.
type Template struct {
	Key         string   `yaml:"key,omitempty"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Content     string   `yaml:"content"`
	Variables   []string `yaml:"-"`
	Source      string   `yaml:"-"`
}

// New builds a template from a name and content, deriving its key and
// variables.
func New(name, content string) Template {
	return Template{
		Key:       Slug(name),
		Name:      strings.TrimSpace(name),
		Content:   content,
		Variables: ExtractVariables(content),
		Source:    SourceUser,
	}
}

// Slug derives a template key: lowercase, whitespace runs become "_".
func Slug(name string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// ExtractVariables returns the distinct placeholder names in order of first
// appearance.
func ExtractVariables(content string) []string {
	var vars []string
	seen := map[string]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		vars = append(vars, name)
	}
	return vars
}

// Missing is the text substituted for an unbound variable.
func Missing(name string) string {
	return "[" + name + " not provided]"
}

// Render substitutes every occurrence of each placeholder with its binding,
// or with Missing(name) when the binding is empty.
func (t Template) Render(bindings map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(t.Content, func(tok string) string {
		name := placeholderRe.FindStringSubmatch(tok)[1]
		if v := bindings[name]; v != "" {
			return v
		}
		return Missing(name)
	})
}
