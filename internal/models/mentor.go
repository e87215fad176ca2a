package models

import "time"

// Mentor represents an authenticated actor who observes and coaches interns.
// Rows are created by the OAuth sign-in linker; this service only reads them.
type Mentor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username  string    `gorm:"size:255;not null" json:"username"`
	Root      bool      `gorm:"not null;default:false" json:"root"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
