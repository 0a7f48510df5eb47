package application

import (
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rejdeboer/notes-relay/internal/configuration"
	"github.com/rejdeboer/notes-relay/internal/logger"
	"github.com/rejdeboer/notes-relay/internal/routes"
	"github.com/rejdeboer/notes-relay/internal/store"
	"github.com/rejdeboer/notes-relay/internal/websocket"
)

var log = logger.Get()

type Application struct {
	pool    *pgxpool.Pool
	handler http.Handler
	addr    string
}

func Build(settings configuration.Settings) Application {
	addr := fmt.Sprintf(":%d", settings.Application.Port)

	app := Application{addr: addr}

	var documents store.DocumentStore
	switch settings.Application.StorageBackend {
	case "azblob":
		documents = store.NewBlobStore(GetBlobClient(settings.Azure), settings.Azure.BlobContainer)
	case "postgres", "":
		app.pool = GetDbConnectionPool(settings.Database)
		documents = store.NewPostgresStore(app.pool)
	default:
		log.Fatal().
			Str("backend", settings.Application.StorageBackend).
			Msg("unknown storage backend")
	}
	log.Info().Str("backend", settings.Application.StorageBackend).Msg("document store ready")

	app.handler = routes.CreateHandler(settings, &routes.Env{
		Hub:       websocket.NewHub(),
		Documents: documents,
	})

	return app
}

func (app *Application) Start() error {
	defer app.close()
	log.Info().Msg(fmt.Sprintf("Server listening on %s", app.addr))
	return http.ListenAndServe(app.addr, app.handler)
}

func (app *Application) close() {
	if app.pool != nil {
		app.pool.Close()
	}
}
