package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Specialty string    `gorm:"type:varchar(100)" json:"specialty"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Schedule  JSONB     `gorm:"type:jsonb;default:'{}'" json:"schedule"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`

	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`

	gorm.Model `json:"-"`
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
