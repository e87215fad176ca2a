package models

import "time"

// Batch is a cohort of interns under mentorship for a period.
// Batches are never deleted; EndDate stays nil while the cohort is running.
type Batch struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Interns   []Intern   `json:"-"`
}

// MentorshipAssignment binds a mentor to a batch with a stored permission set.
// A non-root mentor has at most one assignment per batch; no row means no access.
type MentorshipAssignment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	MentorID          uint      `gorm:"not null;uniqueIndex:idx_mentor_batch" json:"mentor_id"`
	BatchID           uint      `gorm:"not null;uniqueIndex:idx_mentor_batch" json:"batch_id"`
	RecordObservation bool      `gorm:"not null;default:false" json:"record_observation"`
	RecordFeedback    bool      `gorm:"not null;default:false" json:"record_feedback"`
	ProgramManager    bool      `gorm:"not null;default:false" json:"program_manager"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Mentor            Mentor    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Batch             Batch     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Permissions is the effective permission set resolved for a mentor on a batch.
type Permissions struct {
	RecordObservation bool `json:"record_observation"`
	RecordFeedback    bool `json:"record_feedback"`
	ProgramManager    bool `json:"program_manager"`
}

// FullPermissions is the synthetic set granted to root mentors on every batch.
func FullPermissions() Permissions {
	return Permissions{RecordObservation: true, RecordFeedback: true, ProgramManager: true}
}

// Permissions returns the stored permission set of the assignment.
func (a MentorshipAssignment) Permissions() Permissions {
	return Permissions{
		RecordObservation: a.RecordObservation,
		RecordFeedback:    a.RecordFeedback,
		ProgramManager:    a.ProgramManager,
	}
}
