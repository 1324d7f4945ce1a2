package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles an account can hold. Every user is exactly one of these and the
// API routing guard enforces the split.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// User represents a clinic account, either a doctor or a patient.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	// Role is either RoleDoctor or RolePatient.
	Role     string `gorm:"type:text;not null;index" json:"role"`
	FullName string `gorm:"type:text;not null" json:"full_name"`
	Avatar   string `gorm:"type:text" json:"avatar,omitempty"`
	// ChatAlerts controls whether the notification watcher raises
	// unread-message alerts for this user.
	ChatAlerts bool      `gorm:"default:true" json:"chat_alerts"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that assigns a UUID when the ID is unset.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// ValidRole reports whether r names a known account role.
func ValidRole(r string) bool {
	return r == RoleDoctor || r == RolePatient
}
