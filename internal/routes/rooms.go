package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rejdeboer/notes-relay/pkg/httperrors"
)

type RoomResponse struct {
	ID          string    `json:"id"`
	Connections int       `json:"connections"`
	LastUpdated time.Time `json:"last_updated"`
}

type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

func (env *Env) listRooms(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	infos := env.Hub.Rooms()
	rooms := make([]RoomResponse, 0, len(infos))
	for _, info := range infos {
		rooms = append(rooms, RoomResponse{
			ID:          info.ID,
			Connections: info.Connections,
			LastUpdated: info.LastUpdated,
		})
	}

	response, err := json.Marshal(RoomListResponse{Rooms: rooms})
	if err != nil {
		httperrors.InternalServerError(w)
		log.Error().Err(err).Msg("error marshalling response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}
