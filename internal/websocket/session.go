package websocket

import (
	"time"

	gwebsocket "github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/rejdeboer/notes-relay/internal/logger"
)

// Session drives one client connection against one room: join, replay,
// relay loop, teardown. The session owns the connection; nothing else
// reads or writes it.
type Session struct {
	hub    *Hub
	roomID string
	client *Client

	log zerolog.Logger
}

func NewSession(hub *Hub, roomID string, conn *gwebsocket.Conn) *Session {
	client := NewClient(conn)
	return &Session{
		hub:    hub,
		roomID: roomID,
		client: client,
		log: logger.Get().With().
			Str("room_id", roomID).
			Str("client_id", client.ID.String()).
			Logger(),
	}
}

// Run blocks until the connection terminates. Cleanup runs exactly once
// on every exit path, normal close and read failure alike.
func (s *Session) Run() {
	room, snapshot := s.hub.Join(s.roomID, s.client)
	defer func() {
		room.leave(s.client)
		s.hub.RemoveRoomIfEmpty(s.roomID)
		s.log.Info().Int("members", room.MemberCount()).Msg("client left room")
	}()

	s.log.Info().Int("members", room.MemberCount()).Msg("client joined room")
	if len(snapshot) > 0 {
		s.log.Debug().Int("bytes", len(snapshot)).Msg("replayed room state")
	}

	go s.client.writePump()
	s.readPump(room)
}

// readPump reads update payloads from the connection and hands them to
// the room until the connection dies.
func (s *Session) readPump(room *Room) {
	conn := s.client.conn
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if gwebsocket.IsUnexpectedCloseError(err, gwebsocket.CloseNormalClosure, gwebsocket.CloseGoingAway) {
				s.log.Warn().Err(err).Msg("websocket read error")
			} else {
				s.log.Info().Msg("client disconnected")
			}
			return
		}

		room.Broadcast(payload, s.client)
	}
}
