package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gatherly/gatherly/internal/server"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Msg("no .env file found, using environment")
	}

	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
