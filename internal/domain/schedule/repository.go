package schedule

import (
	"context"
)

// Repository defines data access for the schedule registry.
type Repository interface {
	// ListAll returns every schedule entry, including excluded and
	// night-shift ones. Filtering is the directory's job.
	ListAll(ctx context.Context) ([]Entry, error)
}
