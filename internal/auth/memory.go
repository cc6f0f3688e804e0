// Package auth provides credential stores for the gatehouse gate. A store
// owns the live set of username/secret pairs and answers every verification
// from its current contents, so edits take effect without restarting the
// gateway.
package auth

import (
	"context"
	"crypto/subtle"
	"sync"
)

// MemoryStore keeps credentials in process memory. Entries may be added and
// removed while the gateway is serving.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]string)}
}

// Put adds a user or replaces an existing user's secret.
func (s *MemoryStore) Put(_ context.Context, username string, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = secret
	return nil
}

// Remove deletes a user. Removing an absent user is a no-op.
func (s *MemoryStore) Remove(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, username)
	return nil
}

// Len reports the number of stored users.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Verify reports whether the pair matches a stored entry.
func (s *MemoryStore) Verify(_ context.Context, username string, password string) bool {
	s.mu.RLock()
	secret, ok := s.users[username]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(password)) == 1
}
