package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// ActivityRepository defines persistence operations for the activity feed.
type ActivityRepository interface {
	Create(ctx context.Context, event *models.ActivityEvent) error
	ListByBatch(ctx context.Context, batchID uint, limit int) ([]models.ActivityEvent, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository instantiates the repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, event *models.ActivityEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *activityRepository) ListByBatch(ctx context.Context, batchID uint, limit int) ([]models.ActivityEvent, error) {
	if limit <= 0 {
		limit = 20
	}

	var events []models.ActivityEvent
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}
