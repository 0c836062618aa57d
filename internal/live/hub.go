package live

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"art-auction/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one websocket connection watching one item
type Client struct {
	ID     string
	ItemID string
	conn   *websocket.Conn
	send   chan []byte
}

type broadcastMessage struct {
	itemID  string
	payload []byte
}

// Hub tracks which connections watch which item and fans bid events out to
// them. Run must be started in its own goroutine before clients connect.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Client]struct{} // itemID -> watching clients

	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMessage
	done       chan struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Client]struct{}),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan broadcastMessage, 256),
		done:        make(chan struct{}),
	}
}

// Run processes register/unregister/broadcast events until Shutdown
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.broadcastToItem(msg.itemID, msg.payload)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Shutdown stops the hub loop and closes every connection
func (h *Hub) Shutdown() {
	close(h.done)
}

// Broadcast queues a payload for every client watching an item
func (h *Hub) Broadcast(itemID string, payload []byte) {
	select {
	case h.broadcast <- broadcastMessage{itemID: itemID, payload: payload}:
	case <-h.done:
	}
}

// SubscriberCount reports how many clients watch an item
func (h *Hub) SubscriberCount(itemID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[itemID])
}

// ServeItem upgrades the request to a websocket and registers the connection
// as a watcher of itemID. The connection is torn down when either pump exits.
func (h *Hub) ServeItem(w http.ResponseWriter, r *http.Request, clientID, itemID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		ID:     clientID,
		ItemID: itemID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}

	h.register <- client
	go client.writePump()
	go client.readPump(h)
	return nil
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[client.ItemID] == nil {
		h.subscribers[client.ItemID] = make(map[*Client]struct{})
	}
	h.subscribers[client.ItemID][client] = struct{}{}

	utils.Info("live: client subscribed", map[string]any{
		"client_id": client.ID,
		"item_id":   client.ItemID,
	})
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	watchers, ok := h.subscribers[client.ItemID]
	if ok {
		if _, present := watchers[client]; present {
			delete(watchers, client)
			close(client.send)
		}
		if len(watchers) == 0 {
			delete(h.subscribers, client.ItemID)
		}
	}
	h.mu.Unlock()

	client.conn.Close()
}

func (h *Hub) broadcastToItem(itemID string, payload []byte) {
	h.mu.RLock()
	var slow []*Client
	for client := range h.subscribers[itemID] {
		select {
		case client.send <- payload:
		default:
			// a full send buffer means the client is not keeping up;
			// drop it rather than block the others
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.removeClient(client)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for itemID, watchers := range h.subscribers {
		for client := range watchers {
			close(client.send)
			client.conn.Close()
		}
		delete(h.subscribers, itemID)
	}
}

// writePump moves payloads from the send channel onto the wire and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pongs are processed, and unregisters the
// client when the connection drops.
func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.Warn("live: websocket read error", map[string]any{
					"client_id": c.ID,
					"error":     err.Error(),
				})
			}
			return
		}
	}
}
