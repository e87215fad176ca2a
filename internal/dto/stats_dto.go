package dto

import "github.com/mentorhub/mentorhub-api/internal/repository"

// BatchStatsResponse carries the dashboard counters for one batch, resolved
// for the calling mentor.
type BatchStatsResponse struct {
	TotalInterns        int64 `json:"total_interns"`
	PendingObservations int64 `json:"pending_observations"`
	PendingFeedback     int64 `json:"pending_feedback"`
	ActiveNotices       int64 `json:"active_notices"`
}

// NewBatchStatsResponse converts a stats snapshot into a DTO.
func NewBatchStatsResponse(stats repository.BatchStats) BatchStatsResponse {
	return BatchStatsResponse{
		TotalInterns:        stats.TotalInterns,
		PendingObservations: stats.PendingObservations,
		PendingFeedback:     stats.PendingFeedback,
		ActiveNotices:       stats.ActiveNotices,
	}
}
