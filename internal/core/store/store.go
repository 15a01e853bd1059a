// Package store persists sessions as one JSON document per session ID.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/igupta/rivalscope/internal/core/models"
)

var (
	// ErrExists is returned by Create when a session file already exists
	// and overwrite was not requested.
	ErrExists = errors.New("session already exists")

	// ErrNotFound is returned by Load when no session file matches the ID.
	ErrNotFound = errors.New("session not found")

	// ErrCorrupt is returned by Load when the file cannot be parsed into
	// the expected shape.
	ErrCorrupt = errors.New("session file corrupt")
)

// envelope is the on-disk session document
type envelope struct {
	SessionData         *models.Session  `json:"session_data"`
	ConversationHistory []models.Message `json:"conversation_history"`
}

// Store reads and writes session files in a single directory. It is the sole
// reader and writer of those files; writes to one session are expected to be
// serialized by the caller.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the sessions directory
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path for a session ID
func (s *Store) Path(sessionID string) string {
	return filepath.Join(s.dir, sessionID+".json")
}

// Create initializes a new session record. It fails with ErrExists if a file
// for that ID is already on disk, unless overwrite is set.
func (s *Store) Create(sessionID string, overwrite bool) (*models.Session, error) {
	path := s.Path(sessionID)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrExists, sessionID)
		}
	}

	now := time.Now()
	session := &models.Session{
		SessionID:   sessionID,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if err := s.Save(session, nil); err != nil {
		return nil, err
	}
	return session, nil
}

// Save serializes the session and its full history to disk. The write is
// atomic from a reader's perspective: data goes to a temp file in the same
// directory, then replaces the target with a rename.
func (s *Store) Save(session *models.Session, history []models.Message) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if history == nil {
		history = []models.Message{}
	}

	data, err := json.MarshalIndent(envelope{
		SessionData:         session,
		ConversationHistory: history,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.SessionID, err)
	}

	tmp, err := os.CreateTemp(s.dir, session.SessionID+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write session %s: %w", session.SessionID, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp session file: %w", err)
	}

	if err := os.Rename(tmpName, s.Path(session.SessionID)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Load restores a session and its history from disk
func (s *Store) Load(sessionID string) (*models.Session, []models.Message, error) {
	data, err := os.ReadFile(s.Path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
		}
		return nil, nil, fmt.Errorf("failed to read session %s: %w", sessionID, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, sessionID, err)
	}
	if env.SessionData == nil || env.SessionData.Validate() != nil {
		return nil, nil, fmt.Errorf("%w: %s: missing session_data", ErrCorrupt, sessionID)
	}
	if env.ConversationHistory == nil {
		env.ConversationHistory = []models.Message{}
	}
	return env.SessionData, env.ConversationHistory, nil
}

// List returns the session IDs present on disk, newest first. IDs embed their
// creation timestamp, so reverse-lexical order is reverse-chronological.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}
