package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// ObservationRepository defines data operations for observations.
type ObservationRepository interface {
	CreateAll(ctx context.Context, observations []models.Observation) error
	ListByIntern(ctx context.Context, internID uint) ([]models.Observation, error)
	ListByBatch(ctx context.Context, batchID uint) ([]models.Observation, error)
}

type observationRepository struct {
	db *gorm.DB
}

// NewObservationRepository instantiates the repository.
func NewObservationRepository(db *gorm.DB) ObservationRepository {
	return &observationRepository{db: db}
}

// CreateAll inserts the given observations inside a single transaction.
func (r *observationRepository) CreateAll(ctx context.Context, observations []models.Observation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range observations {
			if err := tx.Create(&observations[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *observationRepository) ListByIntern(ctx context.Context, internID uint) ([]models.Observation, error) {
	var observations []models.Observation
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Intern").
		Where("intern_id = ?", internID).
		Order("date DESC").
		Find(&observations).Error
	if err != nil {
		return nil, err
	}

	return observations, nil
}

func (r *observationRepository) ListByBatch(ctx context.Context, batchID uint) ([]models.Observation, error) {
	var observations []models.Observation
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Intern").
		Where("batch_id = ?", batchID).
		Order("date DESC").
		Find(&observations).Error
	if err != nil {
		return nil, err
	}

	return observations, nil
}
