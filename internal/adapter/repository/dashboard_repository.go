package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/repositories"
)

const defaultListLimit = 20

// DashboardRepository stores derived check-in records in Postgres
type DashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard record repository
func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

var _ repositories.DashboardRepository = (*DashboardRepository)(nil)

// Create inserts a new record
func (r *DashboardRepository) Create(ctx context.Context, record *entities.DashboardRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByID retrieves a record by ID
func (r *DashboardRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.DashboardRecord, error) {
	var record entities.DashboardRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListByUser returns a user's most recent records, newest first
func (r *DashboardRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.DashboardRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	var records []*entities.DashboardRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
