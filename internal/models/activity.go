package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity event actions recorded for the batch activity feed.
const (
	ActivityObservationRecorded = "observation_recorded"
	ActivityFeedbackRecorded    = "feedback_recorded"
	ActivityFeedbackDelivered   = "feedback_delivered"
	ActivityInternTerminated    = "intern_terminated"
	ActivityInternsOnboarded    = "interns_onboarded"
)

// ActivityEvent captures a notable batch event for the recent-activity feed.
type ActivityEvent struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	BatchID   uint              `gorm:"not null;index" json:"batch_id"`
	MentorID  uint              `gorm:"not null" json:"mentor_id"`
	Action    string            `gorm:"size:64;not null" json:"action"`
	InternID  *uint             `json:"intern_id"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}
