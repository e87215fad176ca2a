package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// BatchStats is the aggregate snapshot shown on the batch dashboard.
type BatchStats struct {
	TotalInterns        int64 `json:"total_interns"`
	PendingObservations int64 `json:"pending_observations"`
	PendingFeedback     int64 `json:"pending_feedback"`
	ActiveNotices       int64 `json:"active_notices"`
}

// StatsRepository computes dashboard aggregates.
type StatsRepository interface {
	BatchStats(ctx context.Context, batchID, mentorID uint, observedSince time.Time) (BatchStats, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository instantiates the repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// BatchStats computes all four counters in a single statement so the snapshot
// is free of read skew. Pending observations are relative to the calling
// mentor: an intern counts as pending until THAT mentor has observed them
// after observedSince. Pending feedback is batch-global by design.
func (r *statsRepository) BatchStats(ctx context.Context, batchID, mentorID uint, observedSince time.Time) (BatchStats, error) {
	var stats BatchStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM interns WHERE batch_id = ?) AS total_interns,
			(SELECT COUNT(*) FROM interns i
				WHERE i.batch_id = ?
				AND NOT EXISTS (
					SELECT 1 FROM observations o
					WHERE o.intern_id = i.id AND o.mentor_id = ? AND o.date >= ?
				)) AS pending_observations,
			(SELECT COUNT(*) FROM feedbacks WHERE batch_id = ? AND delivered = ?) AS pending_feedback,
			(SELECT COUNT(*) FROM interns WHERE batch_id = ? AND notice = ?) AS active_notices`,
		batchID,
		batchID, mentorID, observedSince,
		batchID, false,
		batchID, true,
	).Scan(&stats).Error
	if err != nil {
		return BatchStats{}, err
	}

	return stats, nil
}
