package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// InternRepository defines data operations for interns.
type InternRepository interface {
	CreateAll(ctx context.Context, interns []models.Intern) error
	ListByBatch(ctx context.Context, batchID uint) ([]models.Intern, error)
	GetByID(ctx context.Context, internID uint) (models.Intern, error)
	GetByBatchAndID(ctx context.Context, batchID, internID uint) (models.Intern, error)
	CountInBatch(ctx context.Context, batchID uint, internIDs []uint) (int64, error)
	UpdateFields(ctx context.Context, batchID, internID uint, notice *bool, colorCode *string) error
	Terminate(ctx context.Context, batchID, internID uint) error
	SetImgURL(ctx context.Context, batchID, internID uint, imgURL string) error
}

type internRepository struct {
	db *gorm.DB
}

// NewInternRepository instantiates the repository.
func NewInternRepository(db *gorm.DB) InternRepository {
	return &internRepository{db: db}
}

// CreateAll inserts the given interns inside a single transaction so a failing
// row never leaves a partially onboarded roster behind.
func (r *internRepository) CreateAll(ctx context.Context, interns []models.Intern) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range interns {
			if err := tx.Create(&interns[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *internRepository) ListByBatch(ctx context.Context, batchID uint) ([]models.Intern, error) {
	var interns []models.Intern
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at ASC").
		Find(&interns).Error
	if err != nil {
		return nil, err
	}

	return interns, nil
}

func (r *internRepository) GetByID(ctx context.Context, internID uint) (models.Intern, error) {
	var intern models.Intern
	if err := r.db.WithContext(ctx).First(&intern, internID).Error; err != nil {
		return models.Intern{}, err
	}

	return intern, nil
}

func (r *internRepository) GetByBatchAndID(ctx context.Context, batchID, internID uint) (models.Intern, error) {
	var intern models.Intern
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Where("id = ?", internID).
		First(&intern).Error
	if err != nil {
		return models.Intern{}, err
	}

	return intern, nil
}

// CountInBatch reports how many of the given intern ids belong to the batch.
// Used to reject cross-batch misattribution before recording observations.
func (r *internRepository) CountInBatch(ctx context.Context, batchID uint, internIDs []uint) (int64, error) {
	if len(internIDs) == 0 {
		return 0, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Intern{}).
		Where("batch_id = ?", batchID).
		Where("id IN ?", internIDs).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// UpdateFields applies a partial update: only the supplied fields change, the
// others keep their stored value.
func (r *internRepository) UpdateFields(ctx context.Context, batchID, internID uint, notice *bool, colorCode *string) error {
	updates := map[string]interface{}{}
	if notice != nil {
		updates["notice"] = *notice
	}
	if colorCode != nil {
		updates["color_code"] = *colorCode
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.Intern{}).
		Where("batch_id = ?", batchID).
		Where("id = ?", internID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Terminate sets the monotonic terminated flag. Repeating the call is a no-op.
func (r *internRepository) Terminate(ctx context.Context, batchID, internID uint) error {
	result := r.db.WithContext(ctx).Model(&models.Intern{}).
		Where("batch_id = ?", batchID).
		Where("id = ?", internID).
		Update("terminated", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *internRepository) SetImgURL(ctx context.Context, batchID, internID uint, imgURL string) error {
	result := r.db.WithContext(ctx).Model(&models.Intern{}).
		Where("batch_id = ?", batchID).
		Where("id = ?", internID).
		Update("img_url", imgURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
