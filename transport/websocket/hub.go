package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sudokuarena/server/game/room"
	"github.com/sudokuarena/server/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Client represents one WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string

	// Room identity of the connection. Owned by readPump; the hub tracks
	// membership through its own maps and never reads these fields.
	roomID       string
	playerNumber int
}

// subscription attaches a client to a room.
type subscription struct {
	client *Client
	roomID string
}

// outbound is one encoded event headed for every member of a room.
type outbound struct {
	roomID string
	data   []byte
	except *Client
}

// Hub maintains the set of active clients grouped by room and routes
// broadcasts. All map mutation happens on the Run goroutine.
type Hub struct {
	service service.GameService

	// Clients by room id, plus the reverse mapping for cleanup.
	rooms      map[string]map[*Client]bool
	membership map[*Client]string
	clients    map[*Client]bool

	connect    chan *Client
	register   chan subscription
	detach     chan *Client
	unregister chan *Client
	broadcast  chan outbound
}

// NewHub creates a new WebSocket hub backed by the given game service.
func NewHub(svc service.GameService) *Hub {
	return &Hub{
		service:    svc,
		rooms:      make(map[string]map[*Client]bool),
		membership: make(map[*Client]string),
		clients:    make(map[*Client]bool),
		connect:    make(chan *Client),
		register:   make(chan subscription),
		detach:     make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound),
	}
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.connect:
			h.clients[client] = true
			log.Printf("Client %s connected (total connections: %d)", client.id, len(h.clients))

		case sub := <-h.register:
			h.registerClient(sub)

		case client := <-h.detach:
			h.detachClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// ServeWS handles WebSocket upgrade requests.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
		id:   uuid.NewString(),
	}

	h.connect <- client

	go client.writePump()
	go client.readPump()
}

// ServeHTTP implements http.Handler so the hub can be mounted directly.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.ServeWS(w, r)
}

// BroadcastToRoom sends an event to every client attached to the room,
// skipping except when non-nil.
func (h *Hub) BroadcastToRoom(roomID, event string, payload interface{}, except *Client) {
	data, err := encodeEvent(event, payload)
	if err != nil {
		log.Printf("Failed to marshal %s broadcast: %v", event, err)
		return
	}
	h.broadcast <- outbound{roomID: roomID, data: data, except: except}
}

// registerClient attaches a client to a room.
func (h *Hub) registerClient(sub subscription) {
	if h.rooms[sub.roomID] == nil {
		h.rooms[sub.roomID] = make(map[*Client]bool)
	}
	h.rooms[sub.roomID][sub.client] = true
	h.membership[sub.client] = sub.roomID

	log.Printf("Client %s joined room %s (room connections: %d)",
		sub.client.id, sub.roomID, len(h.rooms[sub.roomID]))
}

// detachClient removes a client from its room without closing the connection.
func (h *Hub) detachClient(client *Client) {
	roomID, ok := h.membership[client]
	if !ok {
		return
	}
	delete(h.membership, client)
	if clients, ok := h.rooms[roomID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, roomID)
		}
	}
	log.Printf("Client %s left room %s", client.id, roomID)
}

// unregisterClient tears the connection down.
func (h *Hub) unregisterClient(client *Client) {
	if !h.clients[client] {
		return
	}
	h.detachClient(client)
	delete(h.clients, client)
	close(client.send)

	log.Printf("Client %s disconnected (total connections: %d)", client.id, len(h.clients))
}

// broadcastMessage fans one encoded event out to a room's clients.
func (h *Hub) broadcastMessage(message outbound) {
	for client := range h.rooms[message.roomID] {
		if client == message.except {
			continue
		}
		select {
		case client.send <- message.data:
		default:
			// Client's send channel is full, close it
			h.unregisterClient(client)
		}
	}
}

// readPump pumps events from the WebSocket connection into the game service.
func (c *Client) readPump() {
	defer func() {
		// A dropped connection counts as leaving the room.
		if c.roomID != "" {
			res, ok := c.hub.service.LeaveRoom(context.Background(), c.roomID, c.playerNumber)
			if ok && !res.RoomDestroyed {
				c.hub.BroadcastToRoom(c.roomID, EventPlayerLeft,
					playerLeftPayload{PlayerNumber: c.playerNumber, Room: res.State}, c)
			}
		}
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.sendEvent(EventError, errorPayload{Message: "malformed message"})
			continue
		}
		c.handleEvent(env)
	}
}

// handleEvent dispatches one inbound envelope.
func (c *Client) handleEvent(env Envelope) {
	switch env.Event {
	case EventJoinRoom:
		c.handleJoin(env.Payload)
	case EventPlaceNumber:
		c.handlePlace(env.Payload)
	case EventClearCell:
		c.handleClear(env.Payload)
	case EventLeaveRoom:
		c.handleLeave(env.Payload)
	default:
		c.sendEvent(EventError, errorPayload{Message: "unknown event: " + env.Event})
	}
}

func (c *Client) handleJoin(payload json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendEvent(EventError, errorPayload{Message: "malformed joinRoom payload"})
		return
	}
	if c.roomID != "" {
		c.sendEvent(EventError, errorPayload{Message: "already in a room"})
		return
	}

	res, err := c.hub.service.JoinRoom(context.Background(), p.RoomID, p.PlayerNumber, p.PlayerName, p.Preset)
	if err != nil {
		c.sendEvent(EventError, errorPayload{Message: err.Error()})
		return
	}

	c.roomID = p.RoomID
	c.playerNumber = res.PlayerNumber
	c.hub.register <- subscription{client: c, roomID: p.RoomID}

	c.sendEvent(EventJoinedRoom, res)

	var joiner room.PublicPlayer
	for _, pp := range res.Room.Players {
		if pp.Number == res.PlayerNumber {
			joiner = pp
			break
		}
	}
	c.hub.BroadcastToRoom(p.RoomID, EventPlayerJoined,
		playerJoinedPayload{Player: joiner, Room: res.Room}, c)
}

// handlePlace applies a digit placement. Stale or garbled events are dropped
// without a reply; late messages from departed players are expected traffic.
func (c *Client) handlePlace(payload json.RawMessage) {
	var p placeNumberPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	if p.RoomID != c.roomID || p.PlayerNumber != c.playerNumber {
		return
	}

	res, ok := c.hub.service.PlaceDigit(context.Background(), p.RoomID, p.PlayerNumber, p.Row, p.Col, p.Num)
	if !ok {
		return
	}

	c.hub.BroadcastToRoom(c.roomID, EventPlayerUpdate, res.Placement, nil)
	if res.RoomCompleted {
		c.hub.BroadcastToRoom(c.roomID, EventGameCompleted,
			gameCompletedPayload{Winner: res.Winner, Room: *res.FinalState}, nil)
	}
}

func (c *Client) handleClear(payload json.RawMessage) {
	var p clearCellPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	if p.RoomID != c.roomID || p.PlayerNumber != c.playerNumber {
		return
	}

	res, ok := c.hub.service.ClearCell(context.Background(), p.RoomID, p.PlayerNumber, p.Row, p.Col)
	if !ok {
		return
	}
	c.hub.BroadcastToRoom(c.roomID, EventCellCleared, res, nil)
}

func (c *Client) handleLeave(payload json.RawMessage) {
	var p leaveRoomPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	if p.RoomID != c.roomID || p.PlayerNumber != c.playerNumber {
		return
	}

	res, ok := c.hub.service.LeaveRoom(context.Background(), p.RoomID, p.PlayerNumber)
	if ok && !res.RoomDestroyed {
		c.hub.BroadcastToRoom(c.roomID, EventPlayerLeft,
			playerLeftPayload{PlayerNumber: c.playerNumber, Room: res.State}, c)
	}

	c.hub.detach <- c
	c.roomID = ""
	c.playerNumber = 0
}

// sendEvent queues an event for this client only.
func (c *Client) sendEvent(event string, payload interface{}) {
	data, err := encodeEvent(event, payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("Client %s send buffer full, dropping %s event", c.id, event)
	}
}

// writePump pumps queued messages out to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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
