package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// ErrFeedbackDelivered indicates a delivery attempt on feedback whose
// delivered flag is already set.
var ErrFeedbackDelivered = errors.New("feedback already delivered")

// FeedbackRepository defines data operations for feedback and its delivery record.
type FeedbackRepository interface {
	CreateWithInternUpdate(ctx context.Context, feedback *models.Feedback, notice *bool, colorCode *string) error
	GetByID(ctx context.Context, id uint) (models.Feedback, error)
	ListByIntern(ctx context.Context, internID uint) ([]models.Feedback, error)
	ListByBatch(ctx context.Context, batchID uint) ([]models.Feedback, error)
	Deliver(ctx context.Context, feedbackID, mentorID uint, content string) (models.FeedbackConversation, error)
	GetConversation(ctx context.Context, feedbackID uint) (models.FeedbackConversation, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository instantiates the repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// CreateWithInternUpdate inserts the feedback row and, when notice or
// colorCode is supplied, applies the matching partial update to the intern.
// Both writes happen in one transaction so a crash can not leave the intern
// status stale relative to the recorded feedback.
func (r *feedbackRepository) CreateWithInternUpdate(ctx context.Context, feedback *models.Feedback, notice *bool, colorCode *string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(feedback).Error; err != nil {
			return err
		}

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

		return tx.Model(&models.Intern{}).
			Where("id = ?", feedback.InternID).
			Where("batch_id = ?", feedback.BatchID).
			Updates(updates).Error
	})
}

func (r *feedbackRepository) GetByID(ctx context.Context, id uint) (models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).First(&feedback, id).Error; err != nil {
		return models.Feedback{}, err
	}

	return feedback, nil
}

func (r *feedbackRepository) ListByIntern(ctx context.Context, internID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Intern").
		Where("intern_id = ?", internID).
		Order("date DESC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}

	return feedbacks, nil
}

func (r *feedbackRepository) ListByBatch(ctx context.Context, batchID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Intern").
		Where("batch_id = ?", batchID).
		Order("date DESC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}

	return feedbacks, nil
}

// Deliver flips the delivered flag and records the conversation in one
// transaction. The flag update is conditional on delivered = false, so a
// concurrent or repeated delivery fails with ErrFeedbackDelivered instead of
// creating a second conversation row.
func (r *feedbackRepository) Deliver(ctx context.Context, feedbackID, mentorID uint, content string) (models.FeedbackConversation, error) {
	conversation := models.FeedbackConversation{
		FeedbackID: feedbackID,
		MentorID:   mentorID,
		Content:    content,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var feedback models.Feedback
		if err := tx.First(&feedback, feedbackID).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Feedback{}).
			Where("id = ?", feedbackID).
			Where("delivered = ?", false).
			Update("delivered", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrFeedbackDelivered
		}

		return tx.Create(&conversation).Error
	})
	if err != nil {
		return models.FeedbackConversation{}, err
	}

	return r.GetConversation(ctx, feedbackID)
}

func (r *feedbackRepository) GetConversation(ctx context.Context, feedbackID uint) (models.FeedbackConversation, error) {
	var conversation models.FeedbackConversation
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Where("feedback_id = ?", feedbackID).
		Limit(1).
		First(&conversation).Error
	if err != nil {
		return models.FeedbackConversation{}, err
	}

	return conversation, nil
}
