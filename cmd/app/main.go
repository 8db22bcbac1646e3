// Command app runs the booking API server.
package main

import (
	"nestling/config"
	"nestling/di"
	"nestling/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	di.InitializeService().Serve()
}
