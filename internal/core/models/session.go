package models

import (
	"errors"
	"time"
)

// SessionIDFormat is the timestamp layout session IDs are derived from.
const SessionIDFormat = "20060102_150405"

// Session represents one tracked analysis run with persisted counters
type Session struct {
	SessionID       string    `json:"session_id"`
	CreatedAt       time.Time `json:"created_at"`
	LastUpdated     time.Time `json:"last_updated"`
	AnalysisCount   int       `json:"analysis_count"`
	TotalTokensUsed int       `json:"total_tokens_used"`
	CompanyName     string    `json:"company_name,omitempty"`
	ReportFilename  string    `json:"report_filename,omitempty"`
}

// NewSession creates a session with a timestamp-derived ID
func NewSession(now time.Time) *Session {
	return &Session{
		SessionID:   "session_" + now.Format(SessionIDFormat),
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// Validate checks if the session has required fields
func (s *Session) Validate() error {
	if s.SessionID == "" {
		return errors.New("session_id is required")
	}
	if s.CreatedAt.IsZero() {
		return errors.New("created_at is required")
	}
	return nil
}
