// Package main is the entry point for the cargo-service application.
//
// @title           Cargo Service API
// @version         1.0.0
// @description     Stowage engine for a space station: places cargo in containers,
// @description     plans retrievals, selects waste for undocking and simulates time.
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/cargo-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Inventory
// @tag.description Containers and items
//
// @tag.name        Placement
// @tag.description Automatic and manual placement, free space
//
// @tag.name        Retrieval
// @tag.description Search and retrieval
//
// @tag.name        Waste
// @tag.description Waste identification, return planning and undocking
//
// @tag.name        Simulation
// @tag.description Simulated clock
//
// @tag.name        Import/Export
// @tag.description CSV and XLSX import and export
//
// @tag.name        Logs
// @tag.description Action log
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	_ "github.com/guttosm/cargo-service/docs" // swagger docs

	"github.com/guttosm/cargo-service/config"
	"github.com/guttosm/cargo-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server.Port)
	server.OnShutdown(application.Close)

	if err := server.Run(context.Background()); err != nil {
		application.Close(context.Background())
		log.Fatal().Err(err).Msg("Server error")
	}
}
