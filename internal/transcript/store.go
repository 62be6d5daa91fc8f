package transcript

import "strings"

// Store maps every section to its accumulated text. Each section always has
// an entry, possibly empty.
type Store struct {
	text [numSections]string
}

// NewStore returns a store with all sections empty.
func NewStore() *Store {
	return &Store{}
}

// Get returns the text of a section. Unknown sections read as empty.
func (s *Store) Get(sec Section) string {
	if !sec.Valid() {
		return ""
	}
	return s.text[sec]
}

// Set overwrites the section text. Manual edits replace the whole buffer.
func (s *Store) Set(sec Section, text string) {
	if !sec.Valid() {
		return
	}
	s.text[sec] = text
}

// Append joins text onto the section with a single space and trims the
// result, keeping prior content.
func (s *Store) Append(sec Section, text string) string {
	if !sec.Valid() {
		return ""
	}
	s.text[sec] = strings.TrimSpace(s.text[sec] + " " + text)
	return s.text[sec]
}

// Snapshot copies the current text of every section.
func (s *Store) Snapshot() map[Section]string {
	out := make(map[Section]string, numSections)
	for _, sec := range All() {
		out[sec] = s.text[sec]
	}
	return out
}

// Reset empties every section.
func (s *Store) Reset() {
	s.text = [numSections]string{}
}

// Empty reports whether no section has any text.
func (s *Store) Empty() bool {
	for _, t := range s.text {
		if strings.TrimSpace(t) != "" {
			return false
		}
	}
	return true
}
