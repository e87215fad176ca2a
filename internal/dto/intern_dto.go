package dto

import (
	"time"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// InternPayload is a single intern in an onboarding request.
type InternPayload struct {
	Name   string `json:"name" validate:"required,min=1"`
	Email  string `json:"email" validate:"required,email"`
	ImgURL string `json:"img_url" validate:"omitempty,url"`
}

// InternOnboardRequest describes the payload for bulk intern onboarding.
type InternOnboardRequest struct {
	Interns []InternPayload `json:"interns" validate:"required,min=1,dive"`
}

// InternUpdateRequest carries the partial-update fields for an intern. At
// least one field must be present; the omitted field keeps its stored value.
type InternUpdateRequest struct {
	Notice    *bool   `json:"notice"`
	ColorCode *string `json:"color_code"`
}

// InternResponse is the serialized representation returned to API clients.
type InternResponse struct {
	ID         uint      `json:"id"`
	BatchID    uint      `json:"batch_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ImgURL     string    `json:"img_url"`
	ColorCode  string    `json:"color_code"`
	Notice     bool      `json:"notice"`
	Terminated bool      `json:"terminated"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewInternResponse converts a model into a DTO.
func NewInternResponse(model models.Intern) InternResponse {
	return InternResponse{
		ID:         model.ID,
		BatchID:    model.BatchID,
		Name:       model.Name,
		Email:      model.Email,
		ImgURL:     model.ImgURL,
		ColorCode:  model.ColorCode,
		Notice:     model.Notice,
		Terminated: model.Terminated,
		CreatedAt:  model.CreatedAt,
	}
}

// NewInternResponseSlice converts a slice of models into DTOs.
func NewInternResponseSlice(interns []models.Intern) []InternResponse {
	responses := make([]InternResponse, 0, len(interns))
	for _, intern := range interns {
		responses = append(responses, NewInternResponse(intern))
	}

	return responses
}

// OnboardResult reports how many interns were onboarded.
type OnboardResult struct {
	Count int `json:"count"`
}
