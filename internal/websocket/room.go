package websocket

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rejdeboer/notes-relay/internal/metrics"
)

// Room is a single broadcast domain. It keeps the full sequence of update
// payloads relayed since the room was created, so that late joiners can be
// brought up to date before they see live traffic.
type Room struct {
	ID string

	mu           sync.RWMutex
	clients      map[*Client]bool
	updates      [][]byte
	lastActivity time.Time

	log zerolog.Logger
}

func newRoom(id string, log zerolog.Logger) *Room {
	return &Room{
		ID:           id,
		clients:      make(map[*Client]bool),
		lastActivity: time.Now(),
		log:          log.With().Str("room_id", id).Logger(),
	}
}

// join registers the client and queues the accumulated room state on its
// send queue. The queue is still empty at this point, so the snapshot is
// delivered before any broadcast accepted after this call. Returns the
// snapshot that was queued, if any.
func (r *Room) join(c *Client) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients[c] = true
	metrics.ConnectedClients.Inc()

	snapshot := r.snapshotLocked()
	if len(snapshot) > 0 {
		c.send <- snapshot
		metrics.Replays.Inc()
	}
	return snapshot
}

// leave removes the client from the room. Calling it for a client that was
// already dropped is a no-op.
func (r *Room) leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[c]; !ok {
		return
	}
	delete(r.clients, c)
	close(c.send)
	metrics.ConnectedClients.Dec()
}

// Broadcast appends the payload to the room log and fans it out to every
// client except the sender. A client whose send queue is full is dropped
// on the spot; the sender is never affected by a failing recipient.
func (r *Room) Broadcast(payload []byte, sender *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.updates = append(r.updates, payload)
	r.lastActivity = time.Now()
	metrics.UpdatesRelayed.Inc()

	for client := range r.clients {
		if client == sender {
			continue
		}
		select {
		case client.send <- payload:
		default:
			r.log.Warn().
				Str("client_id", client.ID.String()).
				Msg("send queue full, dropping client")
			delete(r.clients, client)
			close(client.send)
			metrics.ConnectedClients.Dec()
			metrics.BroadcastFailures.Inc()
		}
	}
}

// snapshotLocked concatenates the update log into a single payload.
// Callers must hold the room lock.
func (r *Room) snapshotLocked() []byte {
	if len(r.updates) == 0 {
		return nil
	}

	size := 0
	for _, update := range r.updates {
		size += len(update)
	}

	snapshot := make([]byte, 0, size)
	for _, update := range r.updates {
		snapshot = append(snapshot, update...)
	}
	return snapshot
}

func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *Room) UpdateCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.updates)
}

func (r *Room) LastActivity() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastActivity
}
