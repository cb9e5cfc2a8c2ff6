package holding

import (
	"context"

	"github.com/arthamitra/arthamitra/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for the holding record store. Every query is
// scoped by the owning user; implementations must never return or mutate rows
// belonging to another user.
type Repository interface {
	// Upsert atomically inserts the holding or, when a row already exists for
	// (user, ISIN, source), replaces its quantity. Returns true when a new row
	// was inserted and false when an existing row was updated.
	Upsert(ctx context.Context, upsert dto.HoldingUpsert) (inserted bool, err error)

	// Get retrieves one holding by ID, scoped to userID.
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.HoldingRead, error)

	// ListByUser lists all holdings owned by userID.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.HoldingRead, error)

	// Delete removes one holding by ID, scoped to userID. Returns the number
	// of rows removed (0 or 1).
	Delete(ctx context.Context, userID, id uuid.UUID) (int64, error)
}
