package websocket

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Observer is notified of hub activity, e.g. for metrics
type Observer interface {
	ClientConnected()
	ClientDisconnected()
	EventEmitted(event string)
}

type noopObserver struct{}

func (noopObserver) ClientConnected()    {}
func (noopObserver) ClientDisconnected() {}
func (noopObserver) EventEmitted(string) {}

type outbound struct {
	room  string
	event string
	data  []byte
}

// Hub maintains the set of active clients and the rooms they joined
type Hub struct {
	// room name => clients in it
	rooms map[string]map[*Client]struct{}

	// client => rooms it joined
	clients map[*Client]map[string]struct{}

	broadcast  chan outbound
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	observer Observer
	logger   zerolog.Logger
}

// NewHub creates a new Hub instance. observer may be nil.
func NewHub(logger zerolog.Logger, observer Observer) *Hub {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		clients:    make(map[*Client]map[string]struct{}),
		broadcast:  make(chan outbound, 256),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		observer:   observer,
		logger:     logger.With().Str("component", "ws_hub").Logger(),
	}
}

// Run handles unregistrations and deliveries until ctx is cancelled, then closes every client
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) shutdown() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		h.dropLocked(client)
	}
}

// registerClient adds client to the hub before its pumps start, so its first action always
// finds it registered. It returns false once the hub has stopped.
func (h *Hub) registerClient(client *Client) bool {
	h.mu.Lock()
	select {
	case <-h.done:
		h.mu.Unlock()
		return false
	default:
	}
	h.clients[client] = make(map[string]struct{})
	h.mu.Unlock()
	h.observer.ClientConnected()

	h.logger.Info().
		Int64("userID", client.userID).
		Str("role", string(client.role)).
		Msg("Client registered")
	return true
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(client)
}

// dropLocked removes client from every room and closes its send channel. h.mu must be held.
func (h *Hub) dropLocked(client *Client) {
	rooms, ok := h.clients[client]
	if !ok {
		return
	}
	for room := range rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	delete(h.clients, client)
	close(client.send)
	h.observer.ClientDisconnected()

	h.logger.Info().
		Int64("userID", client.userID).
		Str("role", string(client.role)).
		Int("rooms", len(rooms)).
		Msg("Client unregistered")
}

// Join adds client to room. Unknown (already dropped) clients are ignored.
func (h *Hub) Join(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rooms, ok := h.clients[client]
	if !ok {
		return
	}
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}
	rooms[room] = struct{}{}
}

// Leave removes client from room
func (h *Hub) Leave(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	if rooms, ok := h.clients[client]; ok {
		delete(rooms, room)
	}
}

// Emit queues event for delivery to every client in room. It implements Emitter.
func (h *Hub) Emit(room, event string, payload any) {
	data, err := encodeFrame(event, payload)
	if err != nil {
		h.logger.Error().Err(err).Str("room", room).Str("event", event).Msg("Failed to marshal event")
		return
	}
	h.emitRaw(room, event, data)
}

func (h *Hub) emitRaw(room, event string, data []byte) {
	select {
	case h.broadcast <- outbound{room: room, event: event, data: data}:
	case <-h.done:
	}
}

// deliver sends msg to every client in its room. Clients whose buffer is full are dropped.
func (h *Hub) deliver(msg outbound) {
	h.observer.EventEmitted(msg.event)

	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[msg.room]
	if !ok {
		h.logger.Debug().Str("room", msg.room).Msg("No clients in room")
		return
	}

	for client := range members {
		select {
		case client.send <- msg.data:
		default:
			h.logger.Warn().Int64("userID", client.userID).Str("room", msg.room).Msg("Dropping slow client")
			h.dropLocked(client)
		}
	}
}

// RoomSize returns the number of clients in room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
