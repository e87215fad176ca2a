package dto

import (
	"time"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// ActivityResponse is a single activity feed entry.
type ActivityResponse struct {
	ID        uint                   `json:"id"`
	BatchID   uint                   `json:"batch_id"`
	MentorID  uint                   `json:"mentor_id"`
	Action    string                 `json:"action"`
	InternID  *uint                  `json:"intern_id"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewActivityResponse converts a model into a DTO.
func NewActivityResponse(model models.ActivityEvent) ActivityResponse {
	return ActivityResponse{
		ID:        model.ID,
		BatchID:   model.BatchID,
		MentorID:  model.MentorID,
		Action:    model.Action,
		InternID:  model.InternID,
		Metadata:  model.Metadata,
		CreatedAt: model.CreatedAt,
	}
}

// NewActivityResponseSlice converts a slice of models into DTOs.
func NewActivityResponseSlice(events []models.ActivityEvent) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, NewActivityResponse(event))
	}

	return responses
}
