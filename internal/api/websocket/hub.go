package websocket

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hatruonggiang/vleague-scheduler/internal/ga"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// envelope is the wire format for every message a Hub broadcasts.
type envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// client is one connected WebSocket subscriber.
type client struct {
	conn *websocket.Conn
	send chan envelope
}

// Hub fans out job progress and lifecycle events to every connected
// WebSocket client. It implements jobrunner.ProgressBroadcaster, so the job
// manager can push events to it without knowing anything about transport.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool

	register   chan *client
	unregister chan *client
	broadcast  chan envelope
}

// NewHub creates an empty hub. Call Run in its own goroutine before serving
// any connections.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan envelope, 64),
	}
}

// Run drives the hub's registration and fan-out loop until the process
// exits. It never returns.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.BroadcastMessage(ClientCount, ClientCountData{Count: count, Timestamp: time.Now()})

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.BroadcastMessage(ClientCount, ClientCountData{Count: count, Timestamp: time.Now()})

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// slow consumer; drop it rather than block the hub
					go func(c *client) { h.unregister <- c }(c)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// GetClientCount returns the number of currently connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastMessage enqueues messageType/data for delivery to every
// connected client.
func (h *Hub) BroadcastMessage(messageType string, data interface{}) {
	h.broadcast <- envelope{Type: messageType, Data: data}
}

// ServeWS upgrades an HTTP request to a WebSocket connection and registers
// it with the hub. Clients are read-only subscribers: this server never
// expects messages back, so the read pump only exists to notice a closed
// connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan envelope, 16)}
	h.register <- c

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// BroadcastProgress implements jobrunner.ProgressBroadcaster.
func (h *Hub) BroadcastProgress(jobID string, leagueID int, progress ga.Progress) {
	pct := 0.0
	if progress.NGenerations > 0 {
		pct = float64(progress.Generation) / float64(progress.NGenerations) * 100.0
	}
	h.BroadcastMessage(JobProgress, JobProgressData{
		JobID:        jobID,
		LeagueID:     leagueID,
		Generation:   progress.Generation,
		NGenerations: progress.NGenerations,
		BestFitness:  progress.BestFitness,
		ProgressPct:  pct,
		ElapsedMs:    progress.Elapsed.Milliseconds(),
	})
}

// BroadcastCompleted implements jobrunner.ProgressBroadcaster.
func (h *Hub) BroadcastCompleted(jobID string, leagueID int, result *ga.Result, duration time.Duration) {
	h.BroadcastMessage(JobCompleted, JobCompletedData{
		JobID:       jobID,
		LeagueID:    leagueID,
		CompletedAt: time.Now(),
		Duration:    duration,
		BestFitness: result.BestReport.Fitness,
		Generations: result.Generations,
	})
}

// BroadcastFailed implements jobrunner.ProgressBroadcaster.
func (h *Hub) BroadcastFailed(jobID string, leagueID int, err error) {
	h.BroadcastMessage(JobFailed, JobFailedData{
		JobID:    jobID,
		LeagueID: leagueID,
		Error:    err.Error(),
		FailedAt: time.Now(),
	})
}
