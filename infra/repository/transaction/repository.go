package transaction

import (
	"context"

	"github.com/arthamitra/arthamitra/infra/repository/model"
	"github.com/arthamitra/arthamitra/pkg/dto"
	repo "github.com/arthamitra/arthamitra/pkg/repository/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a gorm-backed statement transaction repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// InsertIgnoreDuplicates implements transaction.Repository. ON CONFLICT DO
// NOTHING on the dedup index makes re-uploads of the same statement no-ops;
// zero rows affected means the duplicate was skipped.
func (r *repository) InsertIgnoreDuplicates(ctx context.Context, create dto.TransactionCreate) (bool, error) {
	row := model.Transaction{
		ID:          create.ID,
		PortfolioID: create.PortfolioID,
		ISIN:        create.ISIN,
		Date:        create.Date,
		Type:        create.Type,
		Units:       create.Units,
		Amount:      create.Amount,
		Nav:         create.Nav,
		Folio:       create.Folio,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "portfolio_id"}, {Name: "isin"}, {Name: "date"},
			{Name: "type"}, {Name: "units"}, {Name: "amount"},
		},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByPortfolio implements transaction.Repository.
func (r *repository) ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]*dto.TransactionRead, error) {
	var rows []model.Transaction
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		row := rows[i]
		result = append(result, &dto.TransactionRead{
			ID:          row.ID,
			PortfolioID: row.PortfolioID,
			ISIN:        row.ISIN,
			Date:        row.Date,
			Type:        row.Type,
			Units:       row.Units,
			Amount:      row.Amount,
			Nav:         row.Nav,
			Folio:       row.Folio,
			CreatedAt:   row.CreatedAt,
		})
	}
	return result, nil
}
