package models

import "sort"

// ChatMessage is one entry in the append-only chat feed. Messages live in
// the realtime list store (Redis), not in Postgres, so this is a plain
// struct rather than a GORM model.
type ChatMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"` // unix millis, server-assigned; 0 means not yet resolved
}

// SortChatMessages orders messages ascending by timestamp. Ties keep their
// relative order; arrival order across senders is otherwise arbitrary.
func SortChatMessages(messages []ChatMessage) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})
}
