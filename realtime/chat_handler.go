package realtime

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/uxdsrini/studio-api/models"
	"github.com/uxdsrini/studio-api/services"
)

const chatRoom = "chat"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// chatFrame is an inbound frame on the chat socket
type chatFrame struct {
	Type string `json:"type"` // "join" or "message"
	Name string `json:"name,omitempty"`
	Text string `json:"text,omitempty"`
}

// chatEvent is an outbound frame on the chat socket
type chatEvent struct {
	Type     string               `json:"type"` // "history", "messages" or "error"
	Messages []models.ChatMessage `json:"messages,omitempty"`
	Error    *chatError           `json:"error,omitempty"`
}

type chatError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandleChat handles GET /ws/chat - upgrades to a websocket and runs the
// chat session. A connection starts without a name; the first non-empty
// "join" frame sets it for the rest of the session (there is no way back).
// "message" frames before the join are rejected.
func HandleChat(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written its own HTTP error response
		log.Printf("chat websocket upgrade failed: %v", err)
		return
	}

	hub := GetHub()
	cc := hub.Add(chatRoom, conn)
	defer hub.Remove(cc)

	store := services.GetChatStore()
	name := ""

	for {
		var frame chatFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		switch frame.Type {
		case "join":
			if name != "" {
				writeChatError(cc, "NAME_ALREADY_SET", "Display name is already set for this session")
				continue
			}
			trimmed := strings.TrimSpace(frame.Name)
			if trimmed == "" {
				writeChatError(cc, "NAME_REQUIRED", "Display name must not be empty")
				continue
			}
			name = trimmed

			history, err := store.History(c.Request.Context())
			if err != nil {
				log.Printf("failed to load chat history: %v", err)
				writeChatError(cc, "HISTORY_ERROR", "Could not load chat history")
				continue
			}
			if err := cc.WriteJSON(chatEvent{Type: "history", Messages: history}); err != nil {
				return
			}

		case "message":
			if name == "" {
				writeChatError(cc, "NAME_REQUIRED", "Join with a display name before sending messages")
				continue
			}
			text := strings.TrimSpace(frame.Text)
			if text == "" {
				writeChatError(cc, "EMPTY_MESSAGE", "Message text must not be empty")
				continue
			}

			msg := models.ChatMessage{
				ID:        uuid.NewString(),
				Text:      text,
				Sender:    name,
				Timestamp: time.Now().UnixMilli(),
			}
			if err := store.Append(c.Request.Context(), msg); err != nil {
				log.Printf("failed to append chat message: %v", err)
				writeChatError(cc, "SEND_FAILED", "Could not send message")
				continue
			}
			// The store notifies the feed, which broadcasts the new snapshot

		default:
			writeChatError(cc, "UNKNOWN_FRAME", "Unknown frame type")
		}
	}
}

func writeChatError(c *Connection, code, message string) {
	_ = c.WriteJSON(chatEvent{Type: "error", Error: &chatError{Code: code, Message: message}})
}

// ChatFeed relays store change notifications to the chat room: every change
// re-reads the full sorted history and broadcasts it as one snapshot.
type ChatFeed struct {
	store services.ChatStore
	hub   *Hub
}

// NewChatFeed creates a feed over the given store and hub
func NewChatFeed(store services.ChatStore, hub *Hub) *ChatFeed {
	return &ChatFeed{store: store, hub: hub}
}

// Run subscribes to the store and broadcasts snapshots until ctx is done.
// The subscription is released on every exit path.
func (f *ChatFeed) Run(ctx context.Context) error {
	signals, cancel, err := f.store.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-signals:
			if !ok {
				return nil
			}
			history, err := f.store.History(ctx)
			if err != nil {
				log.Printf("failed to load chat history for broadcast: %v", err)
				continue
			}
			f.hub.Broadcast(chatRoom, chatEvent{Type: "messages", Messages: history})
		}
	}
}
