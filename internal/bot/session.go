package bot

import (
	"sync"

	"github.com/Daniyarzr/Flower-bot/internal/flow"
)

// Session is one chat's place in the order capture flow.
type Session struct {
	State flow.State
	Draft flow.Draft
}

// Sessions lives in memory only. A restart drops unfinished drafts, which
// simply returns those chats to the main menu.
type Sessions struct {
	mu sync.RWMutex
	m  map[int64]Session
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[int64]Session)}
}

// Get returns the chat's session; the zero value means idle.
func (s *Sessions) Get(chatID int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[chatID]
}

func (s *Sessions) Put(chatID int64, sess Session) {
	s.mu.Lock()
	s.m[chatID] = sess
	s.mu.Unlock()
}

func (s *Sessions) Clear(chatID int64) {
	s.mu.Lock()
	delete(s.m, chatID)
	s.mu.Unlock()
}
