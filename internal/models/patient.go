package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Patient is a medical record owned by a doctor. It is distinct from the
// patient's User account: the record exists whether or not the person has
// signed up.
type Patient struct {
	ID       string `gorm:"primaryKey" json:"id"`
	DoctorID string `gorm:"type:text;not null;index" json:"doctor_id"`
	FullName string `gorm:"type:text;not null" json:"full_name"`
	Age      int    `json:"age"`
	Gender   string `gorm:"type:text" json:"gender"`
	// Conditions holds diagnosis tags as a PostgreSQL text array.
	Conditions pq.StringArray `gorm:"type:text[]" json:"conditions"`
	Notes      string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (p *Patient) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
