package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

// DashboardRepository persists derived check-in records. Raw media never reaches it.
type DashboardRepository interface {
	Create(ctx context.Context, record *entities.DashboardRecord) error
	// GetByID returns nil, nil when the record does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*entities.DashboardRecord, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*entities.DashboardRecord, error)
}

// BaselineStore keeps one personal baseline per user
type BaselineStore interface {
	// Get returns nil, nil when the user has no baseline yet
	Get(ctx context.Context, userID string) (*entities.Baseline, error)
	Save(ctx context.Context, baseline *entities.Baseline) error
	// Delete is a no-op when the user has no baseline
	Delete(ctx context.Context, userID string) error
}
