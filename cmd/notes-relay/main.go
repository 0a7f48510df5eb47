package main

import (
	"github.com/joho/godotenv"

	"github.com/rejdeboer/notes-relay/internal/application"
	"github.com/rejdeboer/notes-relay/internal/configuration"
	"github.com/rejdeboer/notes-relay/internal/logger"
)

func main() {
	godotenv.Load(".env")
	log := logger.Get()

	settings := configuration.ReadConfiguration("./configuration")

	app := application.Build(settings)

	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("server terminated")
	}
}
