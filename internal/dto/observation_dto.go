package dto

import (
	"time"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// ObservationPayload is a single observation in a bulk recording request.
// WatchOut is a plain bool: false is a valid value, not a missing one.
type ObservationPayload struct {
	InternID uint   `json:"intern_id" validate:"required,gt=0"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	WatchOut bool   `json:"watch_out"`
	Content  string `json:"content" validate:"required,min=1"`
}

// ObservationsCreateRequest describes the bulk observation recording payload.
type ObservationsCreateRequest struct {
	Observations []ObservationPayload `json:"observations" validate:"required,min=1,dive"`
}

// ObservationResponse is the serialized representation returned to API clients.
type ObservationResponse struct {
	ID         uint      `json:"id"`
	InternID   uint      `json:"intern_id"`
	InternName string    `json:"intern_name"`
	MentorID   uint      `json:"mentor_id"`
	MentorName string    `json:"mentor_name"`
	Date       time.Time `json:"date"`
	Watchout   bool      `json:"watchout"`
	Content    string    `json:"content"`
}

// NewObservationResponse converts a model into a DTO.
func NewObservationResponse(model models.Observation) ObservationResponse {
	return ObservationResponse{
		ID:         model.ID,
		InternID:   model.InternID,
		InternName: model.Intern.Name,
		MentorID:   model.MentorID,
		MentorName: model.Mentor.Username,
		Date:       model.Date,
		Watchout:   model.Watchout,
		Content:    model.Content,
	}
}

// NewObservationResponseSlice converts a slice of models into DTOs.
func NewObservationResponseSlice(observations []models.Observation) []ObservationResponse {
	responses := make([]ObservationResponse, 0, len(observations))
	for _, observation := range observations {
		responses = append(responses, NewObservationResponse(observation))
	}

	return responses
}

// RecordResult reports how many rows a bulk recording created.
type RecordResult struct {
	Count int `json:"count"`
}
