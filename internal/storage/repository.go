package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
)

// ErrRunNotFound is returned when no run exists for the requested ID
var ErrRunNotFound = errors.New("run not found")

// Repository defines the interface for run-history persistence
type Repository interface {
	SaveRun(ctx context.Context, run *models.Run) error
	GetRunByID(ctx context.Context, id string) (*models.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*models.Run, error)
	CountRuns(ctx context.Context) (int64, error)
	DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Maintenance
	Close() error
	Migrate() error
}

// RunFilter defines filtering options for run listings
type RunFilter struct {
	Topic       string
	ContentType string
	MinQuality  *float64
	Limit       int
	Offset      int
	OrderBy     string // "created_at", "quality_score"
	OrderDesc   bool
}

// DefaultRunFilter returns a filter with sensible defaults
func DefaultRunFilter() RunFilter {
	return RunFilter{
		Limit:     50,
		OrderBy:   "created_at",
		OrderDesc: true,
	}
}
