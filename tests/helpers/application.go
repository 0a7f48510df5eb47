package helpers

import (
	"context"
	"log"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/rejdeboer/notes-relay/internal/application"
	"github.com/rejdeboer/notes-relay/internal/configuration"
	"github.com/rejdeboer/notes-relay/internal/routes"
	"github.com/rejdeboer/notes-relay/internal/store"
	"github.com/rejdeboer/notes-relay/internal/websocket"
)

var app *TestApp

type TestApp struct {
	Handler       http.Handler
	Hub           *websocket.Hub
	Documents     store.DocumentStore
	BlobClient    *azblob.Client
	BlobContainer string
}

// Should be run in the main test function
func InitApplication(settings configuration.Settings) {
	dbpool := application.GetDbConnectionPool(settings.Database)

	blobClient := application.GetBlobClient(settings.Azure)
	_, err := blobClient.CreateContainer(context.Background(), settings.Azure.BlobContainer, nil)
	if err != nil {
		log.Fatalf("error creating documents container: %v", err)
	}

	hub := websocket.NewHub()
	documents := store.NewPostgresStore(dbpool)

	handler := routes.CreateHandler(settings, &routes.Env{
		Hub:       hub,
		Documents: documents,
	})

	app = &TestApp{
		Handler:       handler,
		Hub:           hub,
		Documents:     documents,
		BlobClient:    blobClient,
		BlobContainer: settings.Azure.BlobContainer,
	}
}

func GetTestApp() *TestApp {
	if app == nil {
		log.Fatal("application not instantiated yet, please do so in the testing main function")
	}
	return app
}
