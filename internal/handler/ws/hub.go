package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"CoinSignals/internal/domain/models"
	"CoinSignals/internal/view"
	xlogger "CoinSignals/pkg/logger"
)

// Config controls the signal feed socket.
type Config struct {
	Path         string
	PingInterval time.Duration
	WriteTimeout time.Duration
	SendBuffer   int
}

func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = "/ws/signals"
	}
	if c.PingInterval <= 0 {
		c.PingInterval = 30 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = 16
	}
	return c
}

// envelope is the frame pushed to every subscriber.
type envelope struct {
	Type string          `json:"type"`
	Data view.SignalsDTO `json:"data"`
}

// Hub keeps the connected signal subscribers and fans batches out to them.
// New subscribers receive the latest batch right away.
type Hub struct {
	cfg      Config
	logger   *xlogger.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*Client]struct{}
	latest  []byte
}

func NewHub(cfg Config, l *xlogger.Logger) *Hub {
	return &Hub{
		cfg:    cfg.withDefaults(),
		logger: l,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) RegisterRoutes(e *echo.Echo) {
	e.GET(h.cfg.Path, h.Serve)
}

// Serve upgrades the request and registers the connection.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", xlogger.Error(err))
		return nil
	}

	client := newClient(h, conn)

	h.mu.Lock()
	h.clients[client] = struct{}{}
	if h.latest != nil {
		client.send <- h.latest
	}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("ws client connected", xlogger.Int("clients", count))

	go client.writePump()
	go client.readPump()
	return nil
}

// Broadcast pushes batch to every subscriber. Subscribers whose buffer is full
// miss this frame.
func (h *Hub) Broadcast(batch models.SignalBatch) error {
	msg, err := json.Marshal(envelope{Type: "signals", Data: view.Signals(batch)})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = msg
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Debug("ws client buffer full, frame dropped")
		}
	}
	return nil
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}
