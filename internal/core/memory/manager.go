// Package memory is the single in-process mutation point for a session and
// its conversation history during an analysis run.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/igupta/rivalscope/internal/core/models"
	"github.com/igupta/rivalscope/internal/core/store"
)

// Stats is a constant-time snapshot of session counters
type Stats struct {
	SessionID     string
	MessageCount  int
	AnalysisCount int
	TokensUsed    int
}

// Manager owns one session and its message history for the lifetime of a
// run. All mutations go through the mutex, which gives the single-writer
// discipline the store requires.
type Manager struct {
	mu      sync.Mutex
	session *models.Session
	history []models.Message
	store   *store.Store
}

// NewManager starts a fresh session with a timestamp-derived ID
func NewManager(st *store.Store) *Manager {
	return &Manager{
		session: models.NewSession(time.Now()),
		history: []models.Message{},
		store:   st,
	}
}

// Resume restores an existing session from the store
func Resume(st *store.Store, sessionID string) (*Manager, error) {
	session, history, err := st.Load(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resume session: %w", err)
	}
	return &Manager{session: session, history: history, store: st}, nil
}

// SessionID returns the managed session's ID
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.SessionID
}

// Record appends a message to the history and bumps last_updated. It always
// succeeds in memory; persistence is a separate, explicit step.
func (m *Manager) Record(role models.Role, content string, metadata map[string]any) {
	msg := models.NewMessage(role, content, metadata)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, msg)
	m.session.LastUpdated = msg.Timestamp
}

// MarkAnalysisComplete increments the analysis counter and records the
// last-known company and report filename.
func (m *Manager) MarkAnalysisComplete(companyName, reportFilename string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.AnalysisCount++
	m.session.CompanyName = companyName
	m.session.ReportFilename = reportFilename
	m.session.LastUpdated = time.Now()
}

// AddTokens tracks best-effort token usage. Providers that report nothing
// leave the counter at zero.
func (m *Manager) AddTokens(n int) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.TotalTokensUsed += n
}

// Statistics returns session counters without scanning the history
func (m *Manager) Statistics() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		SessionID:     m.session.SessionID,
		MessageCount:  len(m.history),
		AnalysisCount: m.session.AnalysisCount,
		TokensUsed:    m.session.TotalTokensUsed,
	}
}

// History returns a copy of the conversation history in insertion order
func (m *Manager) History() []models.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Message, len(m.history))
	copy(out, m.history)
	return out
}

// Session returns a copy of the current session record
func (m *Manager) Session() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.session
}

// Persist writes the session and history to the store. A persist failure
// leaves in-memory state untouched; callers report the error and continue.
func (m *Manager) Persist() error {
	m.mu.Lock()
	session := *m.session
	history := make([]models.Message, len(m.history))
	copy(history, m.history)
	m.mu.Unlock()

	if err := m.store.Save(&session, history); err != nil {
		return fmt.Errorf("failed to persist session %s: %w", session.SessionID, err)
	}
	return nil
}
