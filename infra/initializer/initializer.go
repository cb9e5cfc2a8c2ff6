// Package initializer wires configuration, storage, collaborators and
// services into the dependency set the web API runs on.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/arthamitra/arthamitra/infra/database"
	"github.com/arthamitra/arthamitra/infra/provider/amfinav"
	"github.com/arthamitra/arthamitra/infra/provider/mocknav"
	"github.com/arthamitra/arthamitra/infra/provider/personastatic"
	"github.com/arthamitra/arthamitra/infra/provider/schememaster"
	holdingrepo "github.com/arthamitra/arthamitra/infra/repository/holding"
	transactionrepo "github.com/arthamitra/arthamitra/infra/repository/transaction"
	"github.com/arthamitra/arthamitra/pkg/config"
	"github.com/arthamitra/arthamitra/pkg/importer/cas"
	"github.com/arthamitra/arthamitra/pkg/provider"
	"github.com/arthamitra/arthamitra/pkg/service/advisory"
	"github.com/arthamitra/arthamitra/pkg/service/ingest"
	"gorm.io/gorm"
)

// Deps is the fully wired dependency set.
type Deps struct {
	Logger   *slog.Logger
	DB       *gorm.DB
	Ingest   *ingest.Service
	Advisory *advisory.Service
	Personas *personastatic.Provider
}

// InitializeDependencies builds every dependency from config.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := database.Connect(cfg.DB.Url)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	schemes, err := schememaster.Load(cfg.SchemeMaster.Path)
	if err != nil {
		return nil, fmt.Errorf("load scheme master: %w", err)
	}
	logger.Info("scheme master loaded", "schemes", schemes.Size())

	var prices provider.PriceProvider
	if cfg.Nav.ApiUrl != "" {
		prices = amfinav.New(cfg.Nav, logger)
	} else {
		logger.Warn("no NAV service configured, using mock prices")
		prices = mocknav.New()
	}

	personas := personastatic.New("BALANCED")

	holdings := holdingrepo.New(db)
	transactions := transactionrepo.New(db)
	casImporter := cas.NewImporter(schemes, logger)

	return &Deps{
		Logger:   logger,
		DB:       db,
		Ingest:   ingest.New(holdings, transactions, casImporter, logger),
		Advisory: advisory.New(holdings, transactions, prices, personas, advisory.DefaultScorePolicy(), logger),
		Personas: personas,
	}, nil
}
