package ws_chat

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/spotilove/core/internal/model"
)

const (
	EventNewMessage = "NEW_MESSAGE"
	EventError      = "ERROR"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type MessagePayload struct {
	ID         string `json:"id"`
	FromUserID string `json:"from_user_id"`
	Content    string `json:"content"`
	SentAt     int64  `json:"sent_at"`
}

type Hub struct {
	mu sync.RWMutex

	// Keep track of sets of Clients per user: one user may hold several
	// open connections (phone and laptop).
	users map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	logger *slog.Logger
}

func NewHub() *Hub {
	return &Hub{
		users:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     slog.Default(),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.users[client.userID]; !ok {
		h.users[client.userID] = make(map[*Client]bool)
	}
	h.users[client.userID][client] = true

	h.logger.Info("chat client registered", "user_id", client.userID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.users[client.userID]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			close(client.send)
			if len(conns) == 0 {
				delete(h.users, client.userID)
			}
		}
	}

	h.logger.Info("chat client unregistered", "user_id", client.userID)
}

// Deliver pushes a stored message to the recipient's live connections.
// Offline recipients pick it up from the conversation history instead.
func (h *Hub) Deliver(m model.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.users[m.ToUserID]
	if !ok {
		return
	}

	event := Event{
		Type: EventNewMessage,
		Payload: MessagePayload{
			ID:         m.ID.String(),
			FromUserID: m.FromUserID.String(),
			Content:    m.Content,
			SentAt:     m.SentAt.Unix(),
		},
	}

	for client := range conns {
		select {
		case client.send <- event:
		default:
			close(client.send)
			delete(conns, client)
		}
	}
}

// Online reports whether the user has at least one live connection.
func (h *Hub) Online(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.users[userID]) > 0
}
