package models

import "time"

// Feedback is an append-only note intended to eventually be communicated to an
// intern. Delivered transitions false to true exactly once via the delivery
// operation and never reverts.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MentorID  uint      `gorm:"not null;index" json:"mentor_id"`
	InternID  uint      `gorm:"not null;index" json:"intern_id"`
	BatchID   uint      `gorm:"not null;index" json:"batch_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Notice    bool      `gorm:"not null;default:false" json:"notice"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ColorCode string    `gorm:"size:32" json:"color_code"`
	Delivered bool      `gorm:"not null;default:false" json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
	Mentor    Mentor    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Intern    Intern    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Batch     Batch     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// FeedbackConversation records how a feedback entry was communicated to the
// intern. At most one conversation exists per feedback; the unique index backs
// the delivery conflict guard.
type FeedbackConversation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FeedbackID uint      `gorm:"not null;uniqueIndex" json:"feedback_id"`
	MentorID   uint      `gorm:"not null" json:"mentor_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	Feedback   Feedback  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Mentor     Mentor    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
