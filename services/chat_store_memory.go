package services

import (
	"context"
	"sync"

	"github.com/uxdsrini/studio-api/models"
)

// MemoryChatStore is an in-memory ChatStore used by tests and local
// development without Redis.
type MemoryChatStore struct {
	mu          sync.RWMutex
	messages    []models.ChatMessage
	subscribers map[chan struct{}]struct{}
}

// NewMemoryChatStore creates an empty in-memory chat store
func NewMemoryChatStore() *MemoryChatStore {
	return &MemoryChatStore{
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// SetAsStoreForTesting sets this store as the global chat store instance
func (s *MemoryChatStore) SetAsStoreForTesting() {
	SetChatStore(s)
}

// Append adds a message to the end of the list and notifies subscribers
func (s *MemoryChatStore) Append(_ context.Context, msg models.ChatMessage) error {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	for ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	s.mu.Unlock()
	return nil
}

// History returns every message, sorted ascending by timestamp
func (s *MemoryChatStore) History(_ context.Context) ([]models.ChatMessage, error) {
	s.mu.RLock()
	messages := make([]models.ChatMessage, len(s.messages))
	copy(messages, s.messages)
	s.mu.RUnlock()

	models.SortChatMessages(messages)
	return messages, nil
}

// Subscribe returns a change-notification channel and a cancellation handle
func (s *MemoryChatStore) Subscribe(_ context.Context) (<-chan struct{}, func(), error) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel, nil
}
