package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/igupta/rivalscope/internal/core/memory"
	"github.com/igupta/rivalscope/internal/core/models"
	"github.com/igupta/rivalscope/internal/core/store"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(memory.NewManager(st), 0, nil)
}

func messagesContaining(history []models.Message, substr string) []models.Message {
	var out []models.Message
	for _, m := range history {
		if strings.Contains(m.Content, substr) {
			out = append(out, m)
		}
	}
	return out
}

func TestRunner_Success(t *testing.T) {
	r := newTestRunner(t)

	err := r.Run(context.Background(), "company research", 1, "Researcher", func(ctx context.Context) (string, error) {
		return "Netflix is a streaming platform", nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	history := r.Memory().History()
	if len(history) != 2 {
		t.Fatalf("got %d messages, want exactly 2 (start, end)", len(history))
	}
	if !strings.HasPrefix(history[0].Content, "Starting company research") {
		t.Errorf("first message = %q, want Starting", history[0].Content)
	}
	if !strings.HasPrefix(history[1].Content, "Completed company research") {
		t.Errorf("second message = %q, want Completed", history[1].Content)
	}
	for _, m := range history {
		if m.Metadata["step"] != 1 || m.Metadata["agent"] != "Researcher" {
			t.Errorf("message metadata = %v, want step=1 agent=Researcher", m.Metadata)
		}
	}
}

func TestRunner_Failure(t *testing.T) {
	r := newTestRunner(t)

	cause := errors.New("quota exceeded")
	err := r.Run(context.Background(), "SWOT analysis", 4, "Analyst", func(ctx context.Context) (string, error) {
		return "", cause
	})

	var sf *StepFailure
	if !errors.As(err, &sf) {
		t.Fatalf("Run() error = %v, want *StepFailure", err)
	}
	if sf.Step != "SWOT analysis" || !errors.Is(sf, cause) {
		t.Errorf("StepFailure = %+v, want step name and cause preserved", sf)
	}

	history := r.Memory().History()
	if n := len(messagesContaining(history, "Starting SWOT analysis")); n != 1 {
		t.Errorf("got %d Starting messages, want 1", n)
	}
	if n := len(messagesContaining(history, "Failed SWOT analysis")); n != 1 {
		t.Errorf("got %d Failed messages, want 1", n)
	}
	if n := len(messagesContaining(history, "Completed")); n != 0 {
		t.Errorf("got %d Completed messages, want 0", n)
	}
}

func TestRunner_Timeout(t *testing.T) {
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(memory.NewManager(st), 20*time.Millisecond, nil)

	err = r.Run(context.Background(), "company research", 1, "Researcher", func(ctx context.Context) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return "never", nil
		}
	})

	var sf *StepFailure
	if !errors.As(err, &sf) {
		t.Fatalf("Run() error = %v, want *StepFailure on timeout", err)
	}
	if !errors.Is(sf.Cause, context.DeadlineExceeded) {
		t.Errorf("cause = %v, want context.DeadlineExceeded", sf.Cause)
	}
}

func TestRunner_PersistsAfterStep(t *testing.T) {
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	mem := memory.NewManager(st)
	r := NewRunner(mem, 0, nil)

	if err := r.Run(context.Background(), "company research", 1, "Researcher", func(ctx context.Context) (string, error) {
		return "ok", nil
	}); err != nil {
		t.Fatal(err)
	}

	// The session file on disk already holds both bookkeeping messages
	_, history, err := st.Load(mem.SessionID())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(history) != 2 {
		t.Errorf("persisted history has %d messages, want 2", len(history))
	}
}
