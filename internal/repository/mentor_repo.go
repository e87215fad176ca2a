package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// MentorRepository exposes read access to mentor identities. Mentors are
// created by the OAuth sign-in linker, never by this service.
type MentorRepository interface {
	GetByID(ctx context.Context, id uint) (models.Mentor, error)
	GetByEmail(ctx context.Context, email string) (models.Mentor, error)
}

type mentorRepository struct {
	db *gorm.DB
}

// NewMentorRepository instantiates the repository.
func NewMentorRepository(db *gorm.DB) MentorRepository {
	return &mentorRepository{db: db}
}

func (r *mentorRepository) GetByID(ctx context.Context, id uint) (models.Mentor, error) {
	var mentor models.Mentor
	if err := r.db.WithContext(ctx).First(&mentor, id).Error; err != nil {
		return models.Mentor{}, err
	}

	return mentor, nil
}

func (r *mentorRepository) GetByEmail(ctx context.Context, email string) (models.Mentor, error) {
	var mentor models.Mentor
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&mentor).Error; err != nil {
		return models.Mentor{}, err
	}

	return mentor, nil
}
