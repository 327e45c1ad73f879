// Package store holds the in-memory session state of the bot: drafts awaiting
// user review and the recent-event window used for duplicate suppression.
package store

import (
	"strings"
	"sync"

	"hyeonwoo/receipt-ledger/internal/models"

	"github.com/google/uuid"
)

// PendingStore maps draft ids to drafts awaiting confirmation. It is owned by
// the process, created at startup and injected into the event handlers. There
// is no expiry: a draft lives until it is confirmed, corrected, or the process
// ends.
type PendingStore struct {
	mu     sync.RWMutex
	drafts map[string]*models.Draft
}

// NewPendingStore returns an empty store.
func NewPendingStore() *PendingStore {
	return &PendingStore{drafts: make(map[string]*models.Draft)}
}

// NewID generates a collision-free draft id. Random UUIDs need no shared
// counter, so concurrent creations cannot collide in practice.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Put registers a draft under its id.
func (s *PendingStore) Put(draft *models.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.ID] = draft
}

// Get looks up a live draft. The second result is false for expired or
// unknown ids.
func (s *PendingStore) Get(id string) (*models.Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[id]
	return draft, ok
}

// Take removes and returns the draft in one step. Exactly one of several
// concurrent Take calls for the same id succeeds, which is what makes confirm
// and correction-submit mutually exclusive.
func (s *PendingStore) Take(id string) (*models.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[id]
	if ok {
		delete(s.drafts, id)
	}
	return draft, ok
}

// Len reports the number of live drafts.
func (s *PendingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}
