package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/classkit/wordcloud/pkg/errors"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	submissions map[string][]Submission // sessionID → creation order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[string]*Session),
		submissions: make(map[string][]Submission),
	}
}

func (s *MemoryStore) CreateSession(ctx context.Context, title string, maxPerParticipant int) (*Session, error) {
	if err := errors.ValidateTitle(title); err != nil {
		return nil, err
	}
	if maxPerParticipant < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "max per participant cannot be negative")
	}

	sess := &Session{
		ID:                uuid.NewString(),
		Title:             title,
		Status:            StatusActive,
		MaxPerParticipant: maxPerParticipant,
		CreatedAt:         time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return cloneSession(sess), nil
}

func (s *MemoryStore) GetSession(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	return cloneSession(sess), nil
}

func (s *MemoryStore) EndSession(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	if sess.Status != StatusEnded {
		now := time.Now().UTC()
		sess.Status = StatusEnded
		sess.EndedAt = &now
	}
	return cloneSession(sess), nil
}

func (s *MemoryStore) CreateSubmission(ctx context.Context, sessionID, submitterID, word string) (*Submission, error) {
	if err := errors.ValidateWord(word); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[sessionID]
	if err := checkWrite(sess); err != nil {
		return nil, err
	}

	have := 0
	for _, sub := range s.submissions[sessionID] {
		if sub.SubmitterID == submitterID {
			have++
		}
	}
	if err := checkCap(sess, have); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sub := Submission{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		SubmitterID: submitterID,
		Word:        word,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.submissions[sessionID] = append(s.submissions[sessionID], sub)
	return &sub, nil
}

func (s *MemoryStore) UpdateSubmission(ctx context.Context, sessionID, submissionID, submitterID, word string, admin bool) (*Submission, error) {
	if err := errors.ValidateWord(word); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkWrite(s.sessions[sessionID]); err != nil {
		return nil, err
	}

	subs := s.submissions[sessionID]
	i := slices.IndexFunc(subs, func(sub Submission) bool { return sub.ID == submissionID })
	var found *Submission
	if i >= 0 {
		found = &subs[i]
	}
	if err := checkOwner(found, submitterID, admin); err != nil {
		return nil, err
	}

	found.Word = word
	found.UpdatedAt = time.Now().UTC()
	out := *found
	return &out, nil
}

func (s *MemoryStore) DeleteSubmission(ctx context.Context, sessionID, submissionID, submitterID string, admin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessions[sessionID] == nil {
		return errors.New(errors.ErrCodeSessionNotFound, "session %s not found", sessionID)
	}

	subs := s.submissions[sessionID]
	i := slices.IndexFunc(subs, func(sub Submission) bool { return sub.ID == submissionID })
	var found *Submission
	if i >= 0 {
		found = &subs[i]
	}
	if err := checkOwner(found, submitterID, admin); err != nil {
		return err
	}

	s.submissions[sessionID] = slices.Delete(subs, i, i+1)
	return nil
}

func (s *MemoryStore) ListSubmissions(ctx context.Context, sessionID string) ([]Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.sessions[sessionID] == nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", sessionID)
	}
	return slices.Clone(s.submissions[sessionID]), nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func cloneSession(sess *Session) *Session {
	out := *sess
	if sess.EndedAt != nil {
		t := *sess.EndedAt
		out.EndedAt = &t
	}
	return &out
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
