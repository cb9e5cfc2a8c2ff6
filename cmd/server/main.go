package main

import (
	"fmt"

	"github.com/arthamitra/arthamitra/infra/initializer"
	"github.com/arthamitra/arthamitra/pkg/config"
	"github.com/arthamitra/arthamitra/webapi"
	log "github.com/charmbracelet/log"
)

// @title ArthaMitra Portfolio API
// @version 1.0.0
// @description Portfolio ingestion, valuation and persona-alignment service
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	app := webapi.New(deps, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	deps.Logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}
