package holding

import (
	"context"
	"errors"

	"github.com/arthamitra/arthamitra/infra/repository/model"
	"github.com/arthamitra/arthamitra/pkg/domain/portfolio"
	"github.com/arthamitra/arthamitra/pkg/dto"
	repo "github.com/arthamitra/arthamitra/pkg/repository/holding"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a gorm-backed holding repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Upsert implements holding.Repository. The write is a single atomic
// insert-or-replace on the (user_id, isin, source) unique index, which gives
// the per-key serialization the merge contract requires. The preceding
// existence check only decides the inserted/updated counter.
func (r *repository) Upsert(ctx context.Context, upsert dto.HoldingUpsert) (bool, error) {
	var existing int64
	err := r.db.WithContext(ctx).Model(&model.Holding{}).
		Where("user_id = ? AND isin = ? AND source = ?", upsert.UserID, upsert.ISIN, upsert.Source).
		Count(&existing).Error
	if err != nil {
		return false, err
	}

	row := model.Holding{
		ID:        upsert.ID,
		UserID:    upsert.UserID,
		ISIN:      upsert.ISIN,
		AssetType: upsert.AssetType,
		Quantity:  upsert.Quantity,
		Source:    upsert.Source,
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "isin"}, {Name: "source"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"asset_type", "quantity", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return false, err
	}
	return existing == 0, nil
}

// Get implements holding.Repository.
func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.HoldingRead, error) {
	var row model.Holding
	err := r.db.WithContext(ctx).
		First(&row, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, portfolio.ErrHoldingNotFound
	}
	if err != nil {
		return nil, err
	}
	return mapRowToDTO(&row), nil
}

// ListByUser implements holding.Repository.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.HoldingRead, error) {
	var rows []model.Holding
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.HoldingRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapRowToDTO(&rows[i]))
	}
	return result, nil
}

// Delete implements holding.Repository. The userID scope keeps one user from
// removing another user's rows by guessing ids.
func (r *repository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Holding{})
	return result.RowsAffected, result.Error
}

func mapRowToDTO(row *model.Holding) *dto.HoldingRead {
	return &dto.HoldingRead{
		ID:        row.ID,
		UserID:    row.UserID,
		ISIN:      row.ISIN,
		AssetType: row.AssetType,
		Quantity:  row.Quantity,
		Source:    row.Source,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
