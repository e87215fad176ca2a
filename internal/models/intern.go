package models

import "time"

// Intern belongs to exactly one batch, fixed at onboarding.
// Notice and ColorCode are mutable status flags; Terminated is monotonic and
// never reverts once set.
type Intern struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BatchID    uint      `gorm:"not null;index" json:"batch_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;not null" json:"email"`
	ImgURL     string    `gorm:"size:512" json:"img_url"`
	ColorCode  string    `gorm:"size:32" json:"color_code"`
	Notice     bool      `gorm:"not null;default:false" json:"notice"`
	Terminated bool      `gorm:"not null;default:false" json:"terminated"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Batch      Batch     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
