package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/uxdsrini/studio-api/models"
)

const (
	chatListKey    = "messages"
	chatChannelKey = "messages:updated"
)

// ChatStore is the append-only realtime message list. History is always the
// full list; there is no edit or delete.
type ChatStore interface {
	// Append adds a message to the end of the list and notifies subscribers
	Append(ctx context.Context, msg models.ChatMessage) error

	// History returns every message, sorted ascending by timestamp
	History(ctx context.Context) ([]models.ChatMessage, error)

	// Subscribe returns a channel that receives a signal whenever the list
	// changes, and a cancellation handle that must be called on teardown.
	Subscribe(ctx context.Context) (<-chan struct{}, func(), error)
}

var chatStoreInstance ChatStore

// GetChatStore returns the initialized chat store instance
func GetChatStore() ChatStore {
	return chatStoreInstance
}

// SetChatStore sets the chat store instance (primarily for testing)
func SetChatStore(store ChatStore) {
	chatStoreInstance = store
}

// RedisChatStore implements ChatStore on a Redis list plus a pub/sub channel
// for change notifications, so appends from any instance reach every
// subscriber.
type RedisChatStore struct {
	client *redis.Client
}

// InitChatStore initializes the chat store on the given Redis client
func InitChatStore(client *redis.Client) ChatStore {
	chatStoreInstance = NewRedisChatStore(client)
	return chatStoreInstance
}

// NewRedisChatStore creates a Redis-backed chat store
func NewRedisChatStore(client *redis.Client) *RedisChatStore {
	return &RedisChatStore{client: client}
}

// Append adds a message to the end of the list and notifies subscribers
func (s *RedisChatStore) Append(ctx context.Context, msg models.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	if err := s.client.RPush(ctx, chatListKey, data).Err(); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	// Best effort: readers that miss the signal catch up on the next one
	if err := s.client.Publish(ctx, chatChannelKey, msg.ID).Err(); err != nil {
		return fmt.Errorf("failed to publish message notification: %w", err)
	}

	return nil
}

// History returns every message, sorted ascending by timestamp
func (s *RedisChatStore) History(ctx context.Context) ([]models.ChatMessage, error) {
	entries, err := s.client.LRange(ctx, chatListKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read message list: %w", err)
	}

	messages := make([]models.ChatMessage, 0, len(entries))
	for _, entry := range entries {
		var msg models.ChatMessage
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		messages = append(messages, msg)
	}

	// Concurrent senders can land out of order; the feed sorts on every read
	models.SortChatMessages(messages)
	return messages, nil
}

// Subscribe returns a change-notification channel and a cancellation handle
func (s *RedisChatStore) Subscribe(ctx context.Context) (<-chan struct{}, func(), error) {
	pubsub := s.client.Subscribe(ctx, chatChannelKey)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to message channel: %w", err)
	}

	signals := make(chan struct{}, 1)
	go func() {
		defer close(signals)
		for range pubsub.Channel() {
			select {
			case signals <- struct{}{}:
			default: // a pending signal already covers this change
			}
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return signals, cancel, nil
}
