package transcript

import (
	"errors"
	"testing"
)

func TestNewStoreHasEverySection(t *testing.T) {
	s := NewStore()
	snap := s.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("snapshot has %d sections, want 4", len(snap))
	}
	for _, sec := range All() {
		text, ok := snap[sec]
		if !ok {
			t.Errorf("section %s missing from snapshot", sec)
		}
		if text != "" {
			t.Errorf("section %s = %q, want empty", sec, text)
		}
	}
	if !s.Empty() {
		t.Error("new store should be empty")
	}
}

func TestSetOverwrites(t *testing.T) {
	s := NewStore()
	for _, sec := range All() {
		s.Set(sec, "first draft")
		s.Set(sec, "  final text\nwith lines  ")
		if got := s.Get(sec); got != "  final text\nwith lines  " {
			t.Errorf("Get(%s) = %q, want exact overwrite", sec, got)
		}
	}
}

func TestAppendJoinsWithSingleSpace(t *testing.T) {
	s := NewStore()
	for _, sec := range All() {
		s.Append(sec, "a")
		s.Append(sec, "b")
		if got := s.Get(sec); got != "a b" {
			t.Errorf("Get(%s) = %q, want %q", sec, got, "a b")
		}
	}
}

func TestAppendTrimsEnds(t *testing.T) {
	s := NewStore()
	s.Set(Advice, "rest  ")
	got := s.Append(Advice, " fluids ")
	if got != "rest    fluids" {
		t.Errorf("Append = %q, want %q", got, "rest    fluids")
	}

	s.Set(Operation, "")
	if got := s.Append(Operation, "incision"); got != "incision" {
		t.Errorf("Append to empty = %q, want %q", got, "incision")
	}
}

func TestAppendKeepsOtherSections(t *testing.T) {
	s := NewStore()
	s.Set(Operation, "laparoscopic")
	s.Append(Advice, "patient")
	s.Append(Advice, "stable")

	if got := s.Get(Advice); got != "patient stable" {
		t.Errorf("advice = %q, want %q", got, "patient stable")
	}
	if got := s.Get(Operation); got != "laparoscopic" {
		t.Errorf("operation = %q, want untouched", got)
	}
}

func TestInvalidSectionIgnored(t *testing.T) {
	s := NewStore()
	bad := Section(42)
	s.Set(bad, "x")
	s.Append(bad, "y")
	if got := s.Get(bad); got != "" {
		t.Errorf("Get(invalid) = %q, want empty", got)
	}
	if !s.Empty() {
		t.Error("invalid writes should not touch the store")
	}
}

func TestReset(t *testing.T) {
	s := NewStore()
	s.Set(DischargeSummary, "home tomorrow")
	s.Reset()
	if got := s.Get(DischargeSummary); got != "" {
		t.Errorf("after reset = %q, want empty", got)
	}
}

func TestSectionOrderAndLabels(t *testing.T) {
	want := []struct {
		key, title, heading string
	}{
		{"advice", "Advice", "Advice"},
		{"operation", "Operation", "Operation Details"},
		{"postOperative", "Post-Operative", "Post-Operative Notes"},
		{"dischargeSummary", "Discharge Summary", "Discharge Summary"},
	}
	for i, sec := range All() {
		if sec.Key() != want[i].key {
			t.Errorf("All()[%d].Key() = %q, want %q", i, sec.Key(), want[i].key)
		}
		if sec.Title() != want[i].title {
			t.Errorf("All()[%d].Title() = %q, want %q", i, sec.Title(), want[i].title)
		}
		if sec.Heading() != want[i].heading {
			t.Errorf("All()[%d].Heading() = %q, want %q", i, sec.Heading(), want[i].heading)
		}
		if sec.EmptyText() == "" {
			t.Errorf("All()[%d] has no empty placeholder", i)
		}
	}
}

func TestNextPrevWrap(t *testing.T) {
	if got := DischargeSummary.Next(); got != Advice {
		t.Errorf("DischargeSummary.Next() = %s, want advice", got)
	}
	if got := Advice.Prev(); got != DischargeSummary {
		t.Errorf("Advice.Prev() = %s, want dischargeSummary", got)
	}
	if got := Advice.Next(); got != Operation {
		t.Errorf("Advice.Next() = %s, want operation", got)
	}
}

func TestParseSection(t *testing.T) {
	for _, sec := range All() {
		got, err := ParseSection(sec.Key())
		if err != nil {
			t.Fatalf("ParseSection(%q): %v", sec.Key(), err)
		}
		if got != sec {
			t.Errorf("ParseSection(%q) = %s", sec.Key(), got)
		}
	}

	_, err := ParseSection("radiology")
	if !errors.Is(err, ErrUnknownSection) {
		t.Errorf("ParseSection(radiology) err = %v, want ErrUnknownSection", err)
	}
}
