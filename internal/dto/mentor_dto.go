package dto

import "github.com/mentorhub/mentorhub-api/internal/models"

// MentorResponse is the acting mentor's profile.
type MentorResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Root     bool   `json:"root"`
}

// NewMentorResponse converts a model into a DTO.
func NewMentorResponse(model models.Mentor) MentorResponse {
	return MentorResponse{
		ID:       model.ID,
		Email:    model.Email,
		Username: model.Username,
		Root:     model.Root,
	}
}
