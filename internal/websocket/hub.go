package websocket

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rejdeboer/notes-relay/internal/logger"
	"github.com/rejdeboer/notes-relay/internal/metrics"
)

// Hub owns every live room. A room exists exactly as long as it has at
// least one client; lookup, creation and removal all happen under the
// hub lock so that a join can never race a teardown.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	log zerolog.Logger
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]*Room),
		log:   logger.Get().With().Str("component", "hub").Logger(),
	}
}

// Join adds the client to the room with the given id, creating the room
// if it does not exist. Registration and the state replay happen inside
// the same critical section, so a concurrent RemoveRoomIfEmpty can never
// tear the room down between creation and first membership. Returns the
// room and the snapshot that was replayed to the client.
func (h *Hub) Join(roomID string, client *Client) (*Room, []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok {
		room = newRoom(roomID, h.log)
		h.rooms[roomID] = room
		metrics.ActiveRooms.Inc()
		h.log.Info().Str("room_id", roomID).Msg("created room")
	}

	snapshot := room.join(client)
	return room, snapshot
}

// RemoveRoomIfEmpty drops the room when its last client has left.
// It is a no-op when the room is missing or has picked up new clients
// in the meantime.
func (h *Hub) RemoveRoomIfEmpty(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok || room.MemberCount() > 0 {
		return
	}

	delete(h.rooms, roomID)
	metrics.ActiveRooms.Dec()
	h.log.Info().Str("room_id", roomID).Msg("removed empty room")
}

func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// RoomInfo is a point-in-time view of a live room.
type RoomInfo struct {
	ID          string
	Connections int
	LastUpdated time.Time
}

// Rooms lists every live room.
func (h *Hub) Rooms() []RoomInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	infos := make([]RoomInfo, 0, len(h.rooms))
	for id, room := range h.rooms {
		infos = append(infos, RoomInfo{
			ID:          id,
			Connections: room.MemberCount(),
			LastUpdated: room.LastActivity(),
		})
	}
	return infos
}
