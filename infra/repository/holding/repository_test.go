package holding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/arthamitra/arthamitra/pkg/domain/portfolio"
	"github.com/arthamitra/arthamitra/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func upsertFixture() dto.HoldingUpsert {
	return dto.HoldingUpsert{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ISIN:      "INE002A01018",
		AssetType: "EQUITY",
		Quantity:  decimal.NewFromInt(10),
		Source:    "MANUAL",
	}
}

func TestHoldingRepository_Upsert_Insert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "holdings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "holdings" (.+) ON CONFLICT (.+) DO UPDATE SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	inserted, err := repo.Upsert(context.Background(), upsertFixture())
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldingRepository_Upsert_Replace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "holdings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO "holdings" (.+) ON CONFLICT (.+) DO UPDATE SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	inserted, err := repo.Upsert(context.Background(), upsertFixture())
	require.NoError(t, err)
	assert.False(t, inserted, "existing (user, ISIN, source) row means replace")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldingRepository_Upsert_WriteError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "holdings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "holdings"`).
		WillReturnError(errors.New("write error"))

	_, err := repo.Upsert(context.Background(), upsertFixture())
	require.Error(t, err)
}

func TestHoldingRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectQuery(`SELECT (.+) FROM "holdings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, portfolio.ErrHoldingNotFound)
}

func TestHoldingRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}
	userID := uuid.New()
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM "holdings"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "isin", "asset_type", "quantity", "source", "created_at", "updated_at",
		}).AddRow(id, userID, "INE002A01018", "EQUITY", "10.5", "CSV", now, now))

	got, err := repo.Get(context.Background(), userID, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "INE002A01018", got.ISIN)
	assert.Equal(t, "CSV", got.Source)
	assert.True(t, got.Quantity.Equal(decimal.RequireFromString("10.5")))
}

func TestHoldingRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}
	userID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "holdings" WHERE user_id (.+) ORDER BY created_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "isin", "asset_type", "quantity", "source"}).
			AddRow(uuid.New(), userID, "INE002A01018", "EQUITY", "10", "MANUAL").
			AddRow(uuid.New(), userID, "INF179K01UT0", "MUTUAL_FUND", "21.338", "CAS"))

	rows, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "INE002A01018", rows[0].ISIN)
	assert.Equal(t, "INF179K01UT0", rows[1].ISIN)
}

func TestHoldingRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectExec(`DELETE FROM "holdings" WHERE id = (.+) AND user_id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	removed, err := repo.Delete(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	mock.ExpectExec(`DELETE FROM "holdings" WHERE id = (.+) AND user_id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	removed, err = repo.Delete(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed, "a miss removes nothing instead of erroring")
}
