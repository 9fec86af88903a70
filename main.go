package main

import (
	"github.com/benbjohnson/clock"

	"ftir-blobtrack/internal/logger"
)

func main() {
	log := logger.New()
	log.Info().Str("app", AppName).Msg("starting")

	app := NewBlobTrackApp(log, clock.New())
	app.Run()
}
