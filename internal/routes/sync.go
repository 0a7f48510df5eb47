package routes

import (
	"net/http"
	"strings"

	gwebsocket "github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/rejdeboer/notes-relay/internal/websocket"
)

func handleSync(hub *websocket.Hub, allowedOrigins []string) http.HandlerFunc {
	upgrader := gwebsocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin(allowedOrigins),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := zerolog.Ctx(ctx)
		roomID := r.PathValue("room_id")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied to the client.
			log.Error().Err(err).Msg("websocket upgrade error")
			return
		}

		log.Info().Str("room_id", roomID).Msg("new sync connection")
		websocket.NewSession(hub, roomID, conn).Run()
	}
}

// checkOrigin accepts requests without an Origin header and browser
// requests from one of the allowed origins.
func checkOrigin(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, allowed := range allowedOrigins {
			if allowed == "*" || strings.EqualFold(allowed, origin) {
				return true
			}
		}
		return false
	}
}
