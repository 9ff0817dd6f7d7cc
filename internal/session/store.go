// Package session keeps per-upload processing state in memory: which files a
// batch contains, how far each one got, and the records it produced.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/belegflow/backend/internal/record"
)

// FileStatus tracks a single file through the pipeline.
type FileStatus string

const (
	StatusPending    FileStatus = "pending"
	StatusProcessing FileStatus = "processing"
	StatusCompleted  FileStatus = "completed"
	StatusError      FileStatus = "error"
)

// FileState is the per-file progress entry.
type FileState struct {
	Filename     string                    `json:"dateiname"`
	Status       FileStatus                `json:"status"`
	DocumentType record.DocumentType       `json:"dokument_typ,omitempty"`
	Strategy     string                    `json:"strategie,omitempty"`
	Records      []record.AccountingRecord `json:"datensaetze,omitempty"`
	Error        string                    `json:"fehler,omitempty"`
}

// Session is one upload batch.
type Session struct {
	ID        string      `json:"id"`
	Files     []FileState `json:"dateien"`
	CreatedAt time.Time   `json:"erstellt_am"`
}

// Records returns the usable records of all completed files, in file order.
func (s *Session) Records() []record.AccountingRecord {
	var out []record.AccountingRecord
	for _, f := range s.Files {
		for _, r := range f.Records {
			if r.IsUsable() {
				out = append(out, r)
			}
		}
	}
	return out
}

// Store is an in-memory session store with TTL cleanup.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	done     chan struct{}
}

// NewStore creates a store with background cleanup.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// Create registers a new session for the given filenames.
func (s *Store) Create(filenames []string) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	for _, name := range filenames {
		sess.Files = append(sess.Files, FileState{Filename: name, Status: StatusPending})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

// Get retrieves a session by ID.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return sess, nil
}

// UpdateFile replaces the state of one file within a session.
func (s *Store) UpdateFile(id string, index int, state FileState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	if index < 0 || index >= len(sess.Files) {
		return fmt.Errorf("file index %d out of range", index)
	}
	sess.Files[index] = state
	return nil
}

// Stop signals the background cleanup goroutine to exit.
func (s *Store) Stop() {
	close(s.done)
}

func (s *Store) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for id, sess := range s.sessions {
				if now.Sub(sess.CreatedAt) > s.ttl {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
