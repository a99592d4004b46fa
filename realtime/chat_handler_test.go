package realtime

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/uxdsrini/studio-api/models"
	"github.com/uxdsrini/studio-api/services"
)

// setupChatServer wires a hub, an in-memory store and a running feed behind
// a test server serving the chat socket
func setupChatServer(t *testing.T) (*httptest.Server, *services.MemoryChatStore) {
	t.Helper()

	hub := NewHub()
	SetHub(hub)

	store := services.NewMemoryChatStore()
	store.SetAsStoreForTesting()

	ctx, cancel := context.WithCancel(context.Background())
	feed := NewChatFeed(store, hub)
	go func() { _ = feed.Run(ctx) }()
	t.Cleanup(cancel)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws/chat", HandleChat)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, store
}

func readChatEvent(t *testing.T, conn *websocket.Conn) chatEvent {
	t.Helper()

	var event chatEvent
	readJSONFrame(t, conn, &event)
	return event
}

func TestChatRejectsPlainHTTPRequests(t *testing.T) {
	server, _ := setupChatServer(t)

	// No upgrade headers: gorilla answers with its own error response and
	// the handler must not write a second one
	resp, err := http.Get(server.URL + "/ws/chat")
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.NotContains(t, string(body), `"success"`)
}

func TestChatRequiresJoinBeforeMessages(t *testing.T) {
	server, _ := setupChatServer(t)

	conn := dialWebsocket(t, server, "/ws/chat")
	defer conn.Close()

	assert.NoError(t, conn.WriteJSON(chatFrame{Type: "message", Text: "hello"}))

	event := readChatEvent(t, conn)
	assert.Equal(t, "error", event.Type)
	assert.Equal(t, "NAME_REQUIRED", event.Error.Code)
}

func TestChatJoinValidation(t *testing.T) {
	server, _ := setupChatServer(t)

	conn := dialWebsocket(t, server, "/ws/chat")
	defer conn.Close()

	// Whitespace-only names are rejected and the session stays unnamed
	assert.NoError(t, conn.WriteJSON(chatFrame{Type: "join", Name: "   "}))
	event := readChatEvent(t, conn)
	assert.Equal(t, "error", event.Type)
	assert.Equal(t, "NAME_REQUIRED", event.Error.Code)

	assert.NoError(t, conn.WriteJSON(chatFrame{Type: "join", Name: "Priya"}))
	event = readChatEvent(t, conn)
	assert.Equal(t, "history", event.Type)
	assert.Empty(t, event.Messages)

	// The name is fixed for the rest of the session
	assert.NoError(t, conn.WriteJSON(chatFrame{Type: "join", Name: "Someone Else"}))
	event = readChatEvent(t, conn)
	assert.Equal(t, "error", event.Type)
	assert.Equal(t, "NAME_ALREADY_SET", event.Error.Code)
}

func TestChatJoinDeliversExistingHistory(t *testing.T) {
	server, store := setupChatServer(t)

	ctx := context.Background()
	assert.NoError(t, store.Append(ctx, models.ChatMessage{ID: "a", Text: "later", Sender: "x", Timestamp: 2}))
	assert.NoError(t, store.Append(ctx, models.ChatMessage{ID: "b", Text: "earlier", Sender: "y", Timestamp: 1}))

	conn := dialWebsocket(t, server, "/ws/chat")
	defer conn.Close()

	assert.NoError(t, conn.WriteJSON(chatFrame{Type: "join", Name: "Priya"}))

	event := readChatEvent(t, conn)
	assert.Equal(t, "history", event.Type)
	assert.Len(t, event.Messages, 2)
	assert.Equal(t, "earlier", event.Messages[0].Text)
	assert.Equal(t, "later", event.Messages[1].Text)
}

func TestChatRejectsEmptyMessages(t *testing.T) {
	server, store := setupChatServer(t)

	conn := dialWebsocket(t, server, "/ws/chat")
	defer conn.Close()

	assert.NoError(t, conn.WriteJSON(chatFrame{Type: "join", Name: "Priya"}))
	readChatEvent(t, conn) // history

	assert.NoError(t, conn.WriteJSON(chatFrame{Type: "message", Text: "   "}))
	event := readChatEvent(t, conn)
	assert.Equal(t, "error", event.Type)
	assert.Equal(t, "EMPTY_MESSAGE", event.Error.Code)

	history, err := store.History(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, history)
}

func TestChatBroadcastsSnapshotsToAllParticipants(t *testing.T) {
	server, store := setupChatServer(t)

	sender := dialWebsocket(t, server, "/ws/chat")
	defer sender.Close()
	listener := dialWebsocket(t, server, "/ws/chat")
	defer listener.Close()

	assert.NoError(t, sender.WriteJSON(chatFrame{Type: "join", Name: "Priya"}))
	readChatEvent(t, sender) // history
	assert.NoError(t, listener.WriteJSON(chatFrame{Type: "join", Name: "Dev"}))
	readChatEvent(t, listener) // history

	assert.NoError(t, sender.WriteJSON(chatFrame{Type: "message", Text: "Hello everyone"}))

	// Every participant receives the full snapshot, sender included
	for _, conn := range []*websocket.Conn{sender, listener} {
		event := readChatEvent(t, conn)
		assert.Equal(t, "messages", event.Type)
		assert.Len(t, event.Messages, 1)
		assert.Equal(t, "Hello everyone", event.Messages[0].Text)
		assert.Equal(t, "Priya", event.Messages[0].Sender)
		assert.NotEmpty(t, event.Messages[0].ID)
		assert.Greater(t, event.Messages[0].Timestamp, int64(0))
	}

	history, err := store.History(context.Background())
	assert.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestChatUnknownFrameType(t *testing.T) {
	server, _ := setupChatServer(t)

	conn := dialWebsocket(t, server, "/ws/chat")
	defer conn.Close()

	assert.NoError(t, conn.WriteJSON(chatFrame{Type: "typing"}))
	event := readChatEvent(t, conn)
	assert.Equal(t, "error", event.Type)
	assert.Equal(t, "UNKNOWN_FRAME", event.Error.Code)
}

func TestChatFeedStopsWhenContextIsCancelled(t *testing.T) {
	store := services.NewMemoryChatStore()
	feed := NewChatFeed(store, NewHub())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Feed did not stop after context cancellation")
	}
}
