package widget

import "sync"

var _ Storage = (*SessionStorage)(nil)

// SessionStorage is an in-memory stand-in for the browser session store.
// Contents live exactly as long as the instance, mirroring a session's
// lifetime.
type SessionStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewSessionStorage() *SessionStorage {
	return &SessionStorage{values: map[string]string{}}
}

func (s *SessionStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *SessionStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Reset drops every entry, the session-end equivalent.
func (s *SessionStorage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = map[string]string{}
}
