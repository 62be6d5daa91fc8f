// Package transcript holds the four report sections and their accumulated text.
package transcript

import (
	"errors"
	"fmt"
)

// Section identifies one of the fixed report sections.
type Section int

const (
	Advice Section = iota
	Operation
	PostOperative
	DischargeSummary

	numSections
)

// ErrUnknownSection is returned when a section key does not name a section.
var ErrUnknownSection = errors.New("unknown section")

var sectionInfo = [numSections]struct {
	key     string
	title   string
	heading string
	empty   string
}{
	Advice:           {"advice", "Advice", "Advice", "No advice recorded"},
	Operation:        {"operation", "Operation", "Operation Details", "No operation details recorded"},
	PostOperative:    {"postOperative", "Post-Operative", "Post-Operative Notes", "No post-operative notes recorded"},
	DischargeSummary: {"dischargeSummary", "Discharge Summary", "Discharge Summary", "No discharge summary recorded"},
}

// All returns every section in report order.
func All() []Section {
	return []Section{Advice, Operation, PostOperative, DischargeSummary}
}

// Valid reports whether s is one of the defined sections.
func (s Section) Valid() bool {
	return s >= 0 && s < numSections
}

// Key is the stable identifier used in config, archives and tool arguments.
func (s Section) Key() string {
	if !s.Valid() {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionInfo[s].key
}

// Title is the short tab label.
func (s Section) Title() string {
	if !s.Valid() {
		return s.Key()
	}
	return sectionInfo[s].title
}

// Heading is the label used in exported reports.
func (s Section) Heading() string {
	if !s.Valid() {
		return s.Key()
	}
	return sectionInfo[s].heading
}

// EmptyText is rendered in exports when the section has no text.
func (s Section) EmptyText() string {
	if !s.Valid() {
		return ""
	}
	return sectionInfo[s].empty
}

func (s Section) String() string { return s.Key() }

// Next returns the following section, wrapping around.
func (s Section) Next() Section {
	return Section((int(s) + 1) % int(numSections))
}

// Prev returns the preceding section, wrapping around.
func (s Section) Prev() Section {
	return Section((int(s) + int(numSections) - 1) % int(numSections))
}

// ParseSection maps a section key back to its Section.
func ParseSection(key string) (Section, error) {
	for _, s := range All() {
		if sectionInfo[s].key == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSection, key)
}
