package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/igupta/rivalscope/internal/core/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestCreate(t *testing.T) {
	s := newTestStore(t)

	session, err := s.Create("session_20251130_190229", false)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if session.AnalysisCount != 0 || session.TotalTokensUsed != 0 {
		t.Errorf("counters not initialized to zero")
	}
	if _, err := os.Stat(s.Path(session.SessionID)); err != nil {
		t.Errorf("session file not written: %v", err)
	}
}

func TestCreate_AlreadyExists(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Create("session_20251130_190229", false); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := s.Create("session_20251130_190229", false)
	if !errors.Is(err, ErrExists) {
		t.Errorf("Create() error = %v, want ErrExists", err)
	}

	// Overwrite requested: allowed
	if _, err := s.Create("session_20251130_190229", true); err != nil {
		t.Errorf("Create() with overwrite error = %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	session := models.NewSession(time.Date(2025, 11, 30, 19, 2, 29, 0, time.UTC))
	session.AnalysisCount = 3
	session.TotalTokensUsed = 1500
	session.CompanyName = "Netflix"
	session.ReportFilename = "Netflix_competitive_analysis_20251130_190229.md"

	history := []models.Message{
		models.NewMessage(models.RoleUser, "Analyze Netflix", nil),
		models.NewMessage(models.RoleSystem, "Starting company research", map[string]any{"step": 1, "agent": "Researcher"}),
		models.NewMessage(models.RoleAssistant, "Completed company research", map[string]any{"step": 1, "agent": "Researcher"}),
	}

	if err := s.Save(session, history); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, loadedHistory, err := s.Load(session.SessionID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.AnalysisCount != 3 || loaded.TotalTokensUsed != 1500 {
		t.Errorf("counters lost in round-trip: %+v", loaded)
	}
	if loaded.CompanyName != "Netflix" || loaded.ReportFilename != session.ReportFilename {
		t.Errorf("last-known fields lost in round-trip: %+v", loaded)
	}
	if len(loadedHistory) != len(history) {
		t.Fatalf("history length = %d, want %d", len(loadedHistory), len(history))
	}
	for i := range history {
		if loadedHistory[i].Content != history[i].Content || loadedHistory[i].Role != history[i].Role {
			t.Errorf("message %d mismatch: got %+v, want %+v", i, loadedHistory[i], history[i])
		}
	}
}

func TestLoad_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Load("session_19990101_000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", "{not json"},
		{"missing session_data", `{"conversation_history": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := "session_20251130_190229"
			path := filepath.Join(s.Dir(), id+".json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, _, err := s.Load(id)
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("Load() error = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestSave_NoPartialFileVisible(t *testing.T) {
	s := newTestStore(t)

	session := models.NewSession(time.Now())
	if err := s.Save(session, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// No temp files should remain after a save
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestList(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []string{"session_20251130_190229", "session_20251201_080000"} {
		if _, err := s.Create(id, false); err != nil {
			t.Fatal(err)
		}
	}

	ids, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "session_20251201_080000" {
		t.Errorf("List() = %v, want newest first", ids)
	}
}
