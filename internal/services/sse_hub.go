package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// SSEHub fans generation logs out to the owner's Server-Sent Events streams
type SSEHub struct {
	// user id -> subscribed channels
	clients map[string]map[chan []byte]bool
	mu      sync.RWMutex
}

// NewSSEHub creates a new SSE hub
func NewSSEHub() *SSEHub {
	return &SSEHub{
		clients: make(map[string]map[chan []byte]bool),
	}
}

// RegisterClient registers a new SSE client for a user
func (h *SSEHub) RegisterClient(userID string) chan []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	clientChan := make(chan []byte, 10)
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[chan []byte]bool)
	}
	h.clients[userID][clientChan] = true

	logrus.Infof("SSE client registered for user %s (total clients: %d)", userID, len(h.clients[userID]))
	return clientChan
}

// UnregisterClient removes and closes a client channel
func (h *SSEHub) UnregisterClient(userID string, clientChan chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[userID]
	if clients == nil || !clients[clientChan] {
		return
	}
	delete(clients, clientChan)
	close(clientChan)
	if len(clients) == 0 {
		delete(h.clients, userID)
	}

	logrus.Infof("SSE client unregistered for user %s (remaining clients: %d)", userID, len(clients))
}

// BroadcastLog sends a log entry to every stream of its owner
func (h *SSEHub) BroadcastLog(log *models.GenerationLog) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.clients[log.UserID]
	if len(clients) == 0 {
		return
	}

	logJSON, err := json.Marshal(log)
	if err != nil {
		logrus.Errorf("Failed to marshal log for SSE: %v", err)
		return
	}
	message := []byte(fmt.Sprintf("event: log\ndata: %s\n\n", logJSON))

	for clientChan := range clients {
		select {
		case clientChan <- message:
		default:
			logrus.Warnf("SSE client channel full, skipping user %s", log.UserID)
		}
	}
}

// GetClientCount returns the number of open streams of a user
func (h *SSEHub) GetClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// SendHeartbeat keeps the user's streams alive through proxies
func (h *SSEHub) SendHeartbeat(userID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	heartbeat := []byte(fmt.Sprintf(": heartbeat %s\n\n", time.Now().Format(time.RFC3339)))
	for clientChan := range h.clients[userID] {
		select {
		case clientChan <- heartbeat:
		default:
		}
	}
}
