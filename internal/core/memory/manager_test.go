package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/igupta/rivalscope/internal/core/models"
	"github.com/igupta/rivalscope/internal/core/store"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewManager(st)
}

func TestRecord_MessageCountMatchesCalls(t *testing.T) {
	m := newTestManager(t)

	const n = 25
	for i := 0; i < n; i++ {
		m.Record(models.RoleSystem, fmt.Sprintf("event %d", i), map[string]any{"step": i})
	}

	if got := m.Statistics().MessageCount; got != n {
		t.Errorf("MessageCount = %d, want %d", got, n)
	}

	// Ordering is insertion order
	history := m.History()
	for i, msg := range history {
		if want := fmt.Sprintf("event %d", i); msg.Content != want {
			t.Errorf("history[%d].Content = %q, want %q", i, msg.Content, want)
		}
	}
}

func TestRecord_ConcurrentAppendsDoNotInterleave(t *testing.T) {
	m := newTestManager(t)

	var wg sync.WaitGroup
	const workers, perWorker = 8, 50
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				m.Record(models.RoleSystem, "event", nil)
			}
		}()
	}
	wg.Wait()

	if got := m.Statistics().MessageCount; got != workers*perWorker {
		t.Errorf("MessageCount = %d, want %d", got, workers*perWorker)
	}
}

func TestMarkAnalysisComplete(t *testing.T) {
	m := newTestManager(t)

	m.MarkAnalysisComplete("Netflix", "Netflix_competitive_analysis_20251130_190229.md")
	m.MarkAnalysisComplete("Hulu", "Hulu_competitive_analysis_20251130_200000.md")

	if got := m.Statistics().AnalysisCount; got != 2 {
		t.Errorf("AnalysisCount = %d, want 2", got)
	}
	session := m.Session()
	if session.CompanyName != "Hulu" {
		t.Errorf("CompanyName = %q, want last-written value Hulu", session.CompanyName)
	}
}

func TestAddTokens(t *testing.T) {
	m := newTestManager(t)

	m.AddTokens(1000)
	m.AddTokens(500)
	m.AddTokens(-5) // ignored

	if got := m.Statistics().TokensUsed; got != 1500 {
		t.Errorf("TokensUsed = %d, want 1500", got)
	}
}

func TestPersistAndResume(t *testing.T) {
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	m := NewManager(st)
	m.Record(models.RoleUser, "Analyze Netflix", nil)
	m.Record(models.RoleSystem, "Starting company research", map[string]any{"step": 1})
	m.MarkAnalysisComplete("Netflix", "report.md")

	if err := m.Persist(); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}

	resumed, err := Resume(st, m.SessionID())
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}

	stats := resumed.Statistics()
	if stats.MessageCount != 2 || stats.AnalysisCount != 1 {
		t.Errorf("resumed stats = %+v, want 2 messages, 1 analysis", stats)
	}
	if resumed.History()[0].Content != "Analyze Netflix" {
		t.Errorf("resumed history out of order: %+v", resumed.History())
	}
}

func TestResume_UnknownSession(t *testing.T) {
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Resume(st, "session_19990101_000000"); err == nil {
		t.Error("Resume() with unknown session succeeded, want error")
	}
}
