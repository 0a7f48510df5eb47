package routes

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rejdeboer/notes-relay/pkg/httperrors"
)

type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	ActiveRooms int    `json:"active_rooms"`
	Version     string `json:"version"`
}

func (env *Env) health(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	response, err := json.Marshal(HealthResponse{
		Status:      "ok",
		Service:     serviceName,
		ActiveRooms: env.Hub.RoomCount(),
		Version:     serviceVersion,
	})
	if err != nil {
		httperrors.InternalServerError(w)
		log.Error().Err(err).Msg("error marshalling response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}
