package routes

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/rejdeboer/notes-relay/internal/configuration"
	"github.com/rejdeboer/notes-relay/internal/metrics"
	"github.com/rejdeboer/notes-relay/internal/middleware"
	"github.com/rejdeboer/notes-relay/internal/store"
	"github.com/rejdeboer/notes-relay/internal/websocket"
)

const (
	serviceName    = "notes-relay"
	serviceVersion = "1.0.0"
)

// Env holds the shared dependencies of the route handlers.
type Env struct {
	Hub       *websocket.Hub
	Documents store.DocumentStore
}

func CreateHandler(settings configuration.Settings, env *Env) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", env.health)
	mux.HandleFunc("GET /api/rooms", env.listRooms)
	mux.HandleFunc("GET /api/sync/{room_id}", handleSync(env.Hub, settings.Application.AllowedOrigins))
	mux.HandleFunc("POST /api/documents/{document_id}/save", env.saveDocument)
	mux.HandleFunc("GET /api/documents/{document_id}", env.getDocument)
	mux.HandleFunc("DELETE /api/documents/{document_id}", env.deleteDocument)
	mux.Handle("GET /metrics", metrics.Handler())

	// The built frontend is only served when a bundle directory is
	// configured; the API works standalone either way.
	if settings.Application.StaticDir != "" {
		mux.Handle("/", spaHandler(settings.Application.StaticDir))
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   settings.Application.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.WithLogging(c.Handler(mux))
}
