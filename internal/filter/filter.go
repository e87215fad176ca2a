// Package filter narrows already-fetched batch listings in memory, mirroring
// the dashboard tab filters. Filtering happens after the permission-checked
// fetch so it never widens what a mentor can see.
package filter

import (
	"strings"

	"github.com/mentorhub/mentorhub-api/internal/dto"
)

// InternFilter narrows an intern listing. Zero-valued fields do not filter.
type InternFilter struct {
	Name      string
	ColorCode string
	Notice    *bool
}

// Apply returns the interns matching every set field.
func (f InternFilter) Apply(interns []dto.InternResponse) []dto.InternResponse {
	out := make([]dto.InternResponse, 0, len(interns))
	for _, intern := range interns {
		if f.Name != "" && !containsFold(intern.Name, f.Name) {
			continue
		}
		if f.ColorCode != "" && intern.ColorCode != f.ColorCode {
			continue
		}
		if f.Notice != nil && intern.Notice != *f.Notice {
			continue
		}
		out = append(out, intern)
	}

	return out
}

// ObservationFilter narrows an observation listing.
type ObservationFilter struct {
	InternName string
	Watchout   *bool
}

// Apply returns the observations matching every set field.
func (f ObservationFilter) Apply(observations []dto.ObservationResponse) []dto.ObservationResponse {
	out := make([]dto.ObservationResponse, 0, len(observations))
	for _, observation := range observations {
		if f.InternName != "" && !containsFold(observation.InternName, f.InternName) {
			continue
		}
		if f.Watchout != nil && observation.Watchout != *f.Watchout {
			continue
		}
		out = append(out, observation)
	}

	return out
}

// FeedbackFilter narrows a feedback listing.
type FeedbackFilter struct {
	InternName string
	Delivered  *bool
	Notice     *bool
}

// Apply returns the feedback entries matching every set field.
func (f FeedbackFilter) Apply(feedbacks []dto.FeedbackResponse) []dto.FeedbackResponse {
	out := make([]dto.FeedbackResponse, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		if f.InternName != "" && !containsFold(feedback.InternName, f.InternName) {
			continue
		}
		if f.Delivered != nil && feedback.Delivered != *f.Delivered {
			continue
		}
		if f.Notice != nil && feedback.Notice != *f.Notice {
			continue
		}
		out = append(out, feedback)
	}

	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
