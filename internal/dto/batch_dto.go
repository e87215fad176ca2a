package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

const dateLayout = "2006-01-02"

// ErrInvalidDate indicates a date field that does not match the wire format.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ParseDate parses the wire date format used across the API.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	return parsed, nil
}

// BatchCreateRequest describes the payload for creating a new batch.
// Duplicate names are permitted by design.
type BatchCreateRequest struct {
	Name      string  `json:"name" validate:"required,min=1"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// BatchResponse is the serialized representation returned to API clients.
type BatchResponse struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewBatchResponse converts a model into a DTO.
func NewBatchResponse(model models.Batch) BatchResponse {
	return BatchResponse{
		ID:        model.ID,
		Name:      model.Name,
		StartDate: model.StartDate,
		EndDate:   model.EndDate,
		CreatedAt: model.CreatedAt,
	}
}

// NewBatchResponseSlice converts a slice of models into DTOs.
func NewBatchResponseSlice(batches []models.Batch) []BatchResponse {
	responses := make([]BatchResponse, 0, len(batches))
	for _, batch := range batches {
		responses = append(responses, NewBatchResponse(batch))
	}

	return responses
}

// PermissionsResponse is the effective permission set for the calling mentor
// on one batch.
type PermissionsResponse struct {
	RecordObservation bool `json:"record_observation"`
	RecordFeedback    bool `json:"record_feedback"`
	ProgramManager    bool `json:"program_manager"`
}

// NewPermissionsResponse converts resolved permissions into a DTO.
func NewPermissionsResponse(p models.Permissions) PermissionsResponse {
	return PermissionsResponse{
		RecordObservation: p.RecordObservation,
		RecordFeedback:    p.RecordFeedback,
		ProgramManager:    p.ProgramManager,
	}
}
