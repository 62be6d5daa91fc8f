package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jwulff/medscribe/internal/transcript"
)

// newTestStore opens an in-memory archive with a controllable clock.
func newTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()

	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	return store, &clock
}

func sampleSections() *transcript.Store {
	s := transcript.NewStore()
	s.Set(transcript.Advice, "Rest and fluids")
	s.Set(transcript.Operation, "Laparoscopic appendectomy")
	s.Set(transcript.DischargeSummary, "Discharged day 2")
	return s
}

func TestSaveAndGetReport(t *testing.T) {
	store, _ := newTestStore(t)

	saved, err := store.SaveReport("Medical Transcription Report", sampleSections())
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("saved report should have an ID")
	}

	got, err := store.Report(saved.ID)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if got == nil {
		t.Fatal("expected report, got nil")
	}
	if got.Advice != "Rest and fluids" {
		t.Errorf("advice = %q", got.Advice)
	}
	if got.Operation != "Laparoscopic appendectomy" {
		t.Errorf("operation = %q", got.Operation)
	}
	if got.PostOperative != "" {
		t.Errorf("postOperative = %q, want empty", got.PostOperative)
	}
	if got.Get(transcript.DischargeSummary) != "Discharged day 2" {
		t.Errorf("Get(dischargeSummary) = %q", got.Get(transcript.DischargeSummary))
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("createdAt = %v, want %v", got.CreatedAt, saved.CreatedAt)
	}
}

func TestReportMissing(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Report("nonexistent")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %q", got.ID)
	}
}

func TestReportsNewestFirst(t *testing.T) {
	store, clock := newTestStore(t)

	first, _ := store.SaveReport("first", sampleSections())
	*clock = clock.Add(time.Hour)
	second, _ := store.SaveReport("second", sampleSections())

	reports, err := store.Reports(10)
	if err != nil {
		t.Fatalf("Reports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].ID != second.ID || reports[1].ID != first.ID {
		t.Errorf("order = [%s %s], want newest first", reports[0].Title, reports[1].Title)
	}

	latest, err := store.LatestReport()
	if err != nil {
		t.Fatalf("LatestReport: %v", err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Errorf("latest = %+v, want %q", latest, second.ID)
	}
}

func TestReportsLimit(t *testing.T) {
	store, clock := newTestStore(t)
	for i := 0; i < 3; i++ {
		*clock = clock.Add(time.Minute)
		store.SaveReport("r", sampleSections())
	}

	reports, err := store.Reports(2)
	if err != nil {
		t.Fatalf("Reports: %v", err)
	}
	if len(reports) != 2 {
		t.Errorf("got %d reports, want 2", len(reports))
	}
}

func TestLatestReportEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	latest, err := store.LatestReport()
	if err != nil {
		t.Fatalf("LatestReport: %v", err)
	}
	if latest != nil {
		t.Errorf("expected nil, got %q", latest.ID)
	}
}

func TestOpenFileCreatesArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reports.sqlite")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	saved, err := store.SaveReport("on disk", sampleSections())
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Report(saved.ID)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if got == nil || got.Title != "on disk" {
		t.Errorf("reopened report = %+v", got)
	}
}
