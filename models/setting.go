package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommunicationSetting holds the provider credentials for one channel.
// One row per channel; the scheduler reads these at scan time and
// hands them to the dispatcher as a plain value.
type CommunicationSetting struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Channel Channel   `gorm:"type:varchar(20);uniqueIndex;not null" json:"channel"`
	Enabled bool      `gorm:"default:false" json:"enabled"`

	Provider   string `gorm:"type:varchar(50);not null" json:"provider"`
	APIKey     string `gorm:"type:varchar(200)" json:"apiKey"`
	AccountSID string `gorm:"type:varchar(100)" json:"accountSid"`
	FromNumber string `gorm:"type:varchar(30)" json:"fromNumber"`
	FromEmail  string `gorm:"type:varchar(100)" json:"fromEmail"`

	SMTPHost     string `gorm:"type:varchar(100)" json:"smtpHost"`
	SMTPPort     int    `json:"smtpPort"`
	SMTPUser     string `gorm:"type:varchar(100)" json:"smtpUser"`
	SMTPPassword string `gorm:"type:varchar(100)" json:"smtpPassword"`

	gorm.Model `json:"-"`
}

func (s *CommunicationSetting) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
