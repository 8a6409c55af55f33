package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/calvinwijaya/blackjack-table/internal/table"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// Client is one WebSocket connection, bound to the table and player named
// in its query string
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	tableID  string
	playerID string
	hub      *Hub
}

// Hub tracks connections by table and by player. It implements
// table.Notifier; answers arriving on a connection go to onMessage.
type Hub struct {
	upgrader websocket.Upgrader

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu      sync.RWMutex
	clients map[*Client]struct{}
	tables  map[string]map[*Client]struct{}
	players map[string]*Client

	onMessage func(c *Client, msg table.Message)
	logger    *slog.Logger
}

// NewHub creates a hub; call Run before serving connections
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origins are restricted by the CORS layer in front
			CheckOrigin: func(*http.Request) bool { return true },
		},
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		clients:    make(map[*Client]struct{}),
		tables:     make(map[string]map[*Client]struct{}),
		players:    make(map[string]*Client),
		logger:     logger,
	}
}

// Run serializes registration and lobby-wide broadcasts
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(c)
			h.mu.Unlock()
		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				if !c.queue(data) {
					h.removeLocked(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	if c.tableID != "" {
		if h.tables[c.tableID] == nil {
			h.tables[c.tableID] = make(map[*Client]struct{})
		}
		h.tables[c.tableID][c] = struct{}{}
	}
	if c.playerID != "" {
		// a reconnect replaces the player's previous connection
		h.players[c.playerID] = c
	}
}

func (h *Hub) removeLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)

	if members := h.tables[c.tableID]; members != nil {
		delete(members, c)
		if len(members) == 0 {
			delete(h.tables, c.tableID)
		}
	}
	if h.players[c.playerID] == c {
		delete(h.players, c.playerID)
	}
}

func (h *Hub) encode(message interface{}, attrs ...any) ([]byte, bool) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("encode websocket message", append(attrs, "error", err)...)
		return nil, false
	}
	return data, true
}

// Broadcast sends a message to every connection; Run must be running
func (h *Hub) Broadcast(message interface{}) {
	if data, ok := h.encode(message); ok {
		h.broadcast <- data
	}
}

// BroadcastToTable sends a message to every connection watching tableID
func (h *Hub) BroadcastToTable(tableID string, message interface{}) {
	data, ok := h.encode(message, "table", tableID)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.tables[tableID] {
		// a full buffer drops the message; the client is cut off on its next failed write
		c.queue(data)
	}
}

// SendToPlayer sends a message to the player's current connection, if any
func (h *Hub) SendToPlayer(playerID string, message interface{}) {
	data, ok := h.encode(message, "player", playerID)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.players[playerID]; ok {
		c.queue(data)
	}
}

// WebSocketHandler upgrades /ws?tableId=&playerId= connections
func (h *Hub) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", "error", err)
		return
	}

	q := r.URL.Query()
	c := &Client{
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		tableID:  q.Get("tableId"),
		playerID: q.Get("playerId"),
		hub:      h,
	}

	// queued before registering so it is always the first frame
	if welcome, ok := h.encode(table.Message{
		Type:     table.MsgWelcome,
		TableID:  c.tableID,
		PlayerID: c.playerID,
		Data:     map[string]string{"message": "Connected to blackjack table server"},
	}); ok {
		c.send <- welcome
	}
	h.register <- c

	go c.readPump()
	go c.writePump()
}

// queue hands data to the write pump without blocking
func (c *Client) queue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// reply queues a message for this client only
func (c *Client) reply(msg table.Message) {
	data, ok := c.hub.encode(msg, "player", c.playerID)
	if !ok {
		return
	}
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, live := c.hub.clients[c]; live {
		c.queue(data)
	}
}

// readPump turns inbound frames into answers until the connection drops
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg table.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			switch {
			case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF):
				// the frame is consumed; a dead connection fails the next read
				c.hub.logger.Debug("bad websocket message", "player", c.playerID, "error", err)
				continue
			case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure):
				c.hub.logger.Warn("websocket read", "player", c.playerID, "error", err)
			}
			return
		}

		// a connection speaks for the player and table it registered with
		msg.PlayerID = c.playerID
		if msg.TableID == "" {
			msg.TableID = c.tableID
		}
		if c.hub.onMessage != nil {
			c.hub.onMessage(c, msg)
		}
	}
}

// writePump writes one JSON document per frame and keeps the connection alive
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		var err error
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			err = c.conn.WriteMessage(websocket.TextMessage, data)
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = c.conn.WriteMessage(websocket.PingMessage, nil)
		}
		if err != nil {
			return
		}
	}
}
