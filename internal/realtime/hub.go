// Package realtime pushes newly stored messages to connected accounts over
// websockets.
package realtime

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"stemchat/internal/dbmysql"
)

// Event is the envelope written to websocket clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Hub struct {
	clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	accountMap map[uint64]*Client
	mu         sync.RWMutex
	logger     *log.Logger
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		accountMap: make(map[uint64]*Client),
		logger:     log.New(os.Stdout, "[REALTIME] ", log.LstdFlags),
	}
}

func (h *Hub) Run() {
	h.logger.Println("websocket hub started")
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.accountMap[client.accountID] = client
			h.mu.Unlock()
			h.logger.Printf("client connected: %s (id %d), total clients: %d",
				client.handle, client.accountID, len(h.clients))

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				delete(h.accountMap, client.accountID)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Printf("client disconnected: %s (id %d)", client.handle, client.accountID)
		}
	}
}

// SendToAccount delivers an event to an account's open connection. A client
// that is not connected is simply skipped; delivery to offline accounts is
// out of scope.
func (h *Hub) SendToAccount(accountID uint64, event Event) {
	h.mu.RLock()
	client, ok := h.accountMap[accountID]
	h.mu.RUnlock()

	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Printf("failed to marshal event: %v", err)
		return
	}

	select {
	case client.send <- data:
	default:
		h.logger.Printf("send buffer full for %s, dropping event", client.handle)
	}
}

// MessageCreated implements the chat service's Notifier: the stored message
// is pushed to the recipient and echoed back to the sender.
func (h *Hub) MessageCreated(msg *dbmysql.Message) {
	event := Event{Type: "message", Payload: msg}
	h.SendToAccount(msg.RecipientID, event)
	if msg.SenderID != msg.RecipientID {
		h.SendToAccount(msg.SenderID, event)
	}
}
