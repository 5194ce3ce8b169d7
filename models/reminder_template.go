package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderTemplate is a reusable message body with {{placeholder}}
// variables, tied to a channel, a language and a timing offset before
// the appointment.
type ReminderTemplate struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Channel     Channel   `gorm:"type:varchar(20);index:idx_channel_language;not null" json:"channel"`
	Language    string    `gorm:"type:varchar(10);index:idx_channel_language;not null" json:"language"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	TimingDays  int       `gorm:"not null" json:"timingDays"`
	TimingHours int       `gorm:"default:0" json:"timingHours"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (t *ReminderTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// FireTime is the moment this template's reminder becomes due for an
// appointment at the given time.
func (t *ReminderTemplate) FireTime(appointmentAt time.Time) time.Time {
	offset := time.Duration(t.TimingDays)*24*time.Hour + time.Duration(t.TimingHours)*time.Hour
	return appointmentAt.Add(-offset)
}
