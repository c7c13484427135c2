// ABOUTME: WebSocket event hub for narration jobs
// ABOUTME: Broadcasts stage, report, error, and ready events to subscribers

package httpserver

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Message is the top-level wrapper for all event stream messages
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type stageEvent struct {
	Stage string `json:"stage"`
}

type reportEvent struct {
	Genre     string `json:"genre"`
	Narration string `json:"narration"`
}

type errorEvent struct {
	Error string `json:"error"`
}

type readyEvent struct {
	HasAudio bool   `json:"has_audio"`
	AudioURL string `json:"audio_url,omitempty"`
}

// Hub fans job events out to WebSocket subscribers
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]bool
}

// NewHub creates an empty event hub
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*websocket.Conn]bool),
	}
}

// Subscribe adds a connection to a job's event stream
func (h *Hub) Subscribe(jobID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[jobID] == nil {
		h.subs[jobID] = make(map[*websocket.Conn]bool)
	}
	h.subs[jobID][conn] = true
}

// Unsubscribe removes a connection from a job's event stream
func (h *Hub) Unsubscribe(jobID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs[jobID], conn)
	if len(h.subs[jobID]) == 0 {
		delete(h.subs, jobID)
	}
}

// Publish sends a message to every subscriber of a job. Connections that
// fail to take the write are dropped from the stream.
func (h *Hub) Publish(jobID string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", msg.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.subs[jobID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error writing %s event: %v", msg.Type, err)
			conn.Close()
			delete(h.subs[jobID], conn)
		}
	}
	if len(h.subs[jobID]) == 0 {
		delete(h.subs, jobID)
	}
}
