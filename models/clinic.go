package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clinic is the single practice profile. Its name and phone feed the
// {{clinic_name}} and {{clinic_phone}} template variables.
type Clinic struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	OperatingHours JSONB     `gorm:"type:jsonb;default:'{}'" json:"operatingHours"`

	gorm.Model `json:"-"`
}

func (c *Clinic) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
