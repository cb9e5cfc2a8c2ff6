// Package database opens the gorm connection for the portfolio store.
package database

import (
	"errors"

	"github.com/arthamitra/arthamitra/infra/repository/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens a postgres connection and migrates the portfolio schema.
// SkipDefaultTransaction keeps single-statement writes (the per-row upserts)
// from being wrapped in an extra transaction.
func Connect(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL is not set")
	}
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.Holding{}, &model.Transaction{}); err != nil {
		return nil, err
	}
	return db, nil
}
