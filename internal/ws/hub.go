package ws

import (
	"sync"

	"go.uber.org/zap"
)

// Hub is the connection registry: connID -> live connection, plus the
// room index that backs the broadcast primitives. It holds no room
// semantics; membership, host state and rosters live in the room service.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*clientConn
	rooms map[string]map[string]*clientConn // roomID -> connID -> conn
}

var _ Transport = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*clientConn),
		rooms: make(map[string]map[string]*clientConn),
	}
}

func (h *Hub) register(c *clientConn) {
	h.mu.Lock()
	h.conns[c.id] = c
	h.mu.Unlock()
}

func (h *Hub) JoinRoom(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns[connID]
	if !ok {
		return
	}
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]*clientConn)
	}
	h.rooms[roomID][connID] = c
}

func (h *Hub) RoomsOf(connID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []string
	for roomID, members := range h.rooms {
		if _, ok := members[connID]; ok {
			out = append(out, roomID)
		}
	}
	return out
}

// Disconnect drops the connection from every room index entry, forgets it
// and closes the socket. Safe to call twice for the same connection.
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	c, ok := h.conns[connID]
	if ok {
		delete(h.conns, connID)
	}
	for roomID, members := range h.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	h.mu.Unlock()

	if ok {
		c.close()
	}
}

func (h *Hub) Send(connID, event string, body any) {
	h.mu.RLock()
	c, ok := h.conns[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if err := c.writeJSON(frame{Event: event, Body: body}); err != nil {
		zap.L().Debug("ws.send_failed", zap.String("conn_id", connID), zap.Error(err))
		h.Disconnect(connID)
	}
}

func (h *Hub) BroadcastToRoom(roomID, event string, body any) {
	h.broadcast(roomID, "", event, body)
}

func (h *Hub) BroadcastToRoomExcept(roomID, exceptConnID, event string, body any) {
	h.broadcast(roomID, exceptConnID, event, body)
}

func (h *Hub) broadcast(roomID, exceptConnID, event string, body any) {
	// Snapshot under the read lock, write outside it.
	h.mu.RLock()
	members := h.rooms[roomID]
	conns := make([]*clientConn, 0, len(members))
	for id, c := range members {
		if id == exceptConnID {
			continue
		}
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	msg := frame{Event: event, Body: body}
	var failed []*clientConn
	for _, c := range conns {
		if err := c.writeJSON(msg); err != nil {
			failed = append(failed, c)
		}
	}
	for _, c := range failed {
		h.Disconnect(c.id)
	}
}
