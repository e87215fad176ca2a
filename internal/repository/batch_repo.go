package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// BatchRepository defines persistence operations for batches.
type BatchRepository interface {
	Create(ctx context.Context, batch *models.Batch) error
	GetByID(ctx context.Context, id uint) (models.Batch, error)
	List(ctx context.Context) ([]models.Batch, error)
	ListAssigned(ctx context.Context, mentorID uint) ([]models.Batch, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository instantiates a GORM-backed repository.
func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) Create(ctx context.Context, batch *models.Batch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *batchRepository) GetByID(ctx context.Context, id uint) (models.Batch, error) {
	var batch models.Batch
	if err := r.db.WithContext(ctx).First(&batch, id).Error; err != nil {
		return models.Batch{}, err
	}

	return batch, nil
}

func (r *batchRepository) List(ctx context.Context) ([]models.Batch, error) {
	var batches []models.Batch
	if err := r.db.WithContext(ctx).Order("start_date DESC").Find(&batches).Error; err != nil {
		return nil, err
	}

	return batches, nil
}

func (r *batchRepository) ListAssigned(ctx context.Context, mentorID uint) ([]models.Batch, error) {
	var batches []models.Batch
	err := r.db.WithContext(ctx).
		Joins("JOIN mentorship_assignments ma ON ma.batch_id = batches.id").
		Where("ma.mentor_id = ?", mentorID).
		Order("batches.start_date DESC").
		Find(&batches).Error
	if err != nil {
		return nil, err
	}

	return batches, nil
}

func (r *batchRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Batch{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
