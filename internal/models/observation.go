package models

import "time"

// Observation is an append-only note a mentor records about an intern within a
// batch context. Date is the day the behaviour was observed, supplied by the
// mentor; CreatedAt is the insert timestamp.
type Observation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MentorID  uint      `gorm:"not null;index" json:"mentor_id"`
	InternID  uint      `gorm:"not null;index" json:"intern_id"`
	BatchID   uint      `gorm:"not null;index" json:"batch_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Watchout  bool      `gorm:"not null;default:false" json:"watchout"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Mentor    Mentor    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Intern    Intern    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Batch     Batch     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
