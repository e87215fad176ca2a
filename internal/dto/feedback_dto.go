package dto

import (
	"time"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// FeedbackCreateRequest describes the payload for recording feedback.
// Notice and ColorCode are optional; when present they also drive the partial
// update of the intern's status fields.
type FeedbackCreateRequest struct {
	InternID  uint    `json:"intern_id" validate:"required,gt=0"`
	Content   string  `json:"content" validate:"required,min=1"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Notice    *bool   `json:"notice"`
	ColorCode *string `json:"color_code" validate:"omitempty,min=1"`
}

// FeedbackDeliverRequest carries the conversation record for a delivery.
type FeedbackDeliverRequest struct {
	Conversation string `json:"conversation" validate:"required,min=1"`
}

// FeedbackResponse is the serialized representation returned to API clients.
type FeedbackResponse struct {
	ID         uint      `json:"id"`
	InternID   uint      `json:"intern_id"`
	InternName string    `json:"intern_name"`
	MentorID   uint      `json:"mentor_id"`
	MentorName string    `json:"mentor_name"`
	Date       time.Time `json:"date"`
	Notice     bool      `json:"notice"`
	Content    string    `json:"content"`
	ColorCode  string    `json:"color_code"`
	Delivered  bool      `json:"delivered"`
}

// NewFeedbackResponse converts a model into a DTO.
func NewFeedbackResponse(model models.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:         model.ID,
		InternID:   model.InternID,
		InternName: model.Intern.Name,
		MentorID:   model.MentorID,
		MentorName: model.Mentor.Username,
		Date:       model.Date,
		Notice:     model.Notice,
		Content:    model.Content,
		ColorCode:  model.ColorCode,
		Delivered:  model.Delivered,
	}
}

// NewFeedbackResponseSlice converts a slice of models into DTOs.
func NewFeedbackResponseSlice(feedbacks []models.Feedback) []FeedbackResponse {
	responses := make([]FeedbackResponse, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		responses = append(responses, NewFeedbackResponse(feedback))
	}

	return responses
}

// ConversationResponse is the record of how a feedback entry was delivered.
type ConversationResponse struct {
	ID          uint      `json:"id"`
	FeedbackID  uint      `json:"feedback_id"`
	DeliveredBy string    `json:"delivered_by"`
	DeliveredAt time.Time `json:"delivered_at"`
	Content     string    `json:"content"`
}

// NewConversationResponse converts a model into a DTO.
func NewConversationResponse(model models.FeedbackConversation) ConversationResponse {
	return ConversationResponse{
		ID:          model.ID,
		FeedbackID:  model.FeedbackID,
		DeliveredBy: model.Mentor.Username,
		DeliveredAt: model.CreatedAt,
		Content:     model.Content,
	}
}
