package archive

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestRecordAndList(t *testing.T) {
	a := openTestArchive(t)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	runs := []Entry{
		{SessionID: "session_20260801_100000", Kind: KindAnalysis, Companies: "Netflix", ReportFile: "netflix.md", Score: 85, CreatedAt: base},
		{SessionID: "session_20260802_100000", Kind: KindAnalysis, Companies: "Hulu", ReportFile: "hulu.md", Score: 71, CreatedAt: base.AddDate(0, 0, 1)},
		{SessionID: "session_20260803_100000", Kind: KindComparison, Companies: "Netflix,Hulu", ReportFile: "cmp.md", Score: 90, CreatedAt: base.AddDate(0, 0, 2)},
	}
	for _, e := range runs {
		if _, err := a.Record(e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	all, err := a.List(time.Time{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d entries, want 3", len(all))
	}
	if all[0].Companies != "Netflix,Hulu" {
		t.Errorf("newest first: got %q", all[0].Companies)
	}
	if all[0].Kind != KindComparison {
		t.Errorf("Kind = %q", all[0].Kind)
	}
	if !all[2].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", all[2].CreatedAt, base)
	}
}

func TestList_Since(t *testing.T) {
	a := openTestArchive(t)

	old := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	if _, err := a.Record(Entry{SessionID: "s1", Kind: KindAnalysis, Companies: "A", ReportFile: "a.md", CreatedAt: old}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Record(Entry{SessionID: "s2", Kind: KindAnalysis, Companies: "B", ReportFile: "b.md", CreatedAt: recent}); err != nil {
		t.Fatal(err)
	}

	entries, err := a.List(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Companies != "B" {
		t.Errorf("entries = %+v, want only the recent run", entries)
	}
}

func TestStats(t *testing.T) {
	a := openTestArchive(t)

	stats, err := a.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty archive: %v", err)
	}
	if stats.TotalRuns != 0 || stats.AverageScore != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{SessionID: "s1", Kind: KindAnalysis, Companies: "Netflix", ReportFile: "1.md", Score: 80, CreatedAt: now.Add(-time.Hour)},
		{SessionID: "s2", Kind: KindAnalysis, Companies: "Netflix", ReportFile: "2.md", Score: 90, CreatedAt: now},
		{SessionID: "s3", Kind: KindComparison, Companies: "Netflix,Hulu", ReportFile: "3.md", Score: 70, CreatedAt: now},
	}
	for _, e := range entries {
		if _, err := a.Record(e); err != nil {
			t.Fatal(err)
		}
	}

	stats, err = a.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalRuns != 3 || stats.Analyses != 2 || stats.Comparisons != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Companies != 2 {
		t.Errorf("Companies = %d, want 2 distinct", stats.Companies)
	}
	if stats.AverageScore != 80 {
		t.Errorf("AverageScore = %v, want 80", stats.AverageScore)
	}
	if !stats.Newest.Equal(now) {
		t.Errorf("Newest = %v, want %v", stats.Newest, now)
	}
}
