package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

const (
	sendBufferSize = 256
	writeWait      = 10 * time.Second
)

// Client is a browser connection watching one product page.
type Client struct {
	ID        string
	ProductID int
	Conn      *websocket.Conn
	Send      chan []byte
}

type productMessage struct {
	productID int
	payload   []byte
}

// Manager tracks live connections and fans rating updates out to the clients
// subscribed to the affected product.
type Manager struct {
	clients    map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan productMessage
	mutex      sync.RWMutex
	// done is closed once the main loop has exited.
	done chan struct{}
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan productMessage, 64),
		done:       make(chan struct{}),
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		defer close(m.done)
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client] = struct{}{}
				m.mutex.Unlock()
				logger.Debug("WebSocket: client %s subscribed to product %d", client.ID, client.productID(m))

			case client := <-m.Unregister:
				m.mutex.Lock()
				m.removeLocked(client)
				m.mutex.Unlock()
				logger.Debug("WebSocket: client %s disconnected", client.ID)

			case msg := <-m.broadcast:
				m.mutex.Lock()
				for client := range m.clients {
					if client.ProductID != msg.productID {
						continue
					}
					select {
					case client.Send <- msg.payload:
					default:
						m.removeLocked(client)
					}
				}
				m.mutex.Unlock()

			case <-ctx.Done():
				m.mutex.Lock()
				for client := range m.clients {
					m.removeLocked(client)
				}
				m.mutex.Unlock()
				return
			}
		}
	}()
}

// Serve registers conn as a client of productID and starts its pumps. After the
// manager has stopped it closes conn and returns nil.
func (m *Manager) Serve(conn *websocket.Conn, productID int) *Client {
	client := &Client{
		ID:        uuid.New().String(),
		ProductID: productID,
		Conn:      conn,
		Send:      make(chan []byte, sendBufferSize),
	}

	select {
	case m.Register <- client:
	case <-m.done:
		conn.Close()
		return nil
	}

	go client.ReadPump(m)
	go client.WritePump()

	return client
}

// Done is closed when the manager has stopped.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// ClientCount returns the number of clients watching productID.
func (m *Manager) ClientCount(productID int) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	count := 0
	for client := range m.clients {
		if client.ProductID == productID {
			count++
		}
	}
	return count
}

// Subscribe moves client to another product.
func (m *Manager) Subscribe(client *Client, productID int) {
	m.mutex.Lock()
	client.ProductID = productID
	m.mutex.Unlock()
}

func (m *Manager) publish(productID int, payload []byte) {
	select {
	case m.broadcast <- productMessage{productID: productID, payload: payload}:
	default:
		logger.Warn("WebSocket: broadcast queue full, dropping update for product %d", productID)
	}
}

func (m *Manager) sendTo(client *Client, payload []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if _, ok := m.clients[client]; !ok {
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}

func (m *Manager) removeLocked(client *Client) {
	if _, ok := m.clients[client]; ok {
		delete(m.clients, client)
		close(client.Send)
	}
}

func (c *Client) productID(m *Manager) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return c.ProductID
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		select {
		case m.Unregister <- c:
		case <-m.done:
		}
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket: read error from client %s: %v", c.ID, err)
			}
			break
		}

		m.HandleClientMessage(c, message)
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("WebSocket: write error to client %s: %v", c.ID, err)
			return
		}
	}
}
