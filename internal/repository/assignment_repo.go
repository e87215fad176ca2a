package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// AssignmentRepository defines persistence operations for mentorship assignments.
type AssignmentRepository interface {
	GetByMentorAndBatch(ctx context.Context, mentorID, batchID uint) (models.MentorshipAssignment, error)
	Create(ctx context.Context, assignment *models.MentorshipAssignment) error
	ListByBatch(ctx context.Context, batchID uint) ([]models.MentorshipAssignment, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) GetByMentorAndBatch(ctx context.Context, mentorID, batchID uint) (models.MentorshipAssignment, error) {
	var assignment models.MentorshipAssignment
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Where("batch_id = ?", batchID).
		First(&assignment).Error
	if err != nil {
		return models.MentorshipAssignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.MentorshipAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) ListByBatch(ctx context.Context, batchID uint) ([]models.MentorshipAssignment, error) {
	var assignments []models.MentorshipAssignment
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Where("batch_id = ?", batchID).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}
