package models

import (
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2025, 11, 30, 19, 2, 29, 0, time.UTC)
	s := NewSession(now)

	if s.SessionID != "session_20251130_190229" {
		t.Errorf("SessionID = %q, want session_20251130_190229", s.SessionID)
	}
	if !s.CreatedAt.Equal(now) || !s.LastUpdated.Equal(now) {
		t.Errorf("timestamps not initialized to now")
	}
	if s.AnalysisCount != 0 || s.TotalTokensUsed != 0 {
		t.Errorf("counters not zeroed: %d analyses, %d tokens", s.AnalysisCount, s.TotalTokensUsed)
	}
}

func TestSessionValidation(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		wantErr bool
	}{
		{
			name: "valid session",
			session: Session{
				SessionID: "session_20251130_190229",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name:    "missing session ID",
			session: Session{CreatedAt: time.Now()},
			wantErr: true,
		},
		{
			name:    "missing created_at",
			session: Session{SessionID: "session_20251130_190229"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompanyAnalysisResultComplete(t *testing.T) {
	full := CompanyAnalysisResult{
		CompanyName:         "Netflix",
		Profile:             "streaming platform",
		Competitors:         []Competitor{{Name: "Hulu"}},
		CompetitiveAnalysis: "analysis",
		SWOT:                SWOT{Strengths: []string{"brand"}},
		PricingAnalysis:     "pricing",
		Report:              "report",
	}
	if !full.Complete() {
		t.Error("fully populated result reported incomplete")
	}

	partial := full
	partial.SWOT = SWOT{}
	if partial.Complete() {
		t.Error("result without SWOT reported complete")
	}
}
