package record

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. The engine calls
// ListByDate, DeleteByDate and BulkCreate inside one transaction per date;
// the rest serves the read/correction API.
type Repository interface {
	// ListByDate returns every record persisted for the date.
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)

	// DeleteByDate removes every record for the date in one statement and
	// returns the number of rows removed.
	DeleteByDate(ctx context.Context, date time.Time) (int64, error)

	// BulkCreate inserts the freshly computed record set for a date.
	BulkCreate(ctx context.Context, records []Record) error

	// GetByID retrieves a single record.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByKeyAndDate retrieves one employee's record for a date, nil when
	// none exists.
	GetByKeyAndDate(ctx context.Context, key string, date time.Time) (*Record, error)

	// List retrieves records with filters and pagination.
	List(ctx context.Context, filter Filter) ([]Record, int64, error)

	// Update persists an operator correction (field values plus flags).
	Update(ctx context.Context, rec Record) error
}
