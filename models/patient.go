package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Channel is a messaging transport a reminder can be delivered over.
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

var ErrMissingContact = errors.New("preferred channel has no matching contact field")

// ValidChannel reports whether c is one of the supported channels.
func ValidChannel(c Channel) bool {
	switch c {
	case ChannelSMS, ChannelWhatsApp, ChannelEmail:
		return true
	}
	return false
}

type Patient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index" json:"createdByUserId"`

	Name             string  `gorm:"not null" json:"name"`
	Phone            string  `json:"phone"`
	WhatsApp         string  `json:"whatsapp"`
	Email            string  `json:"email"`
	PreferredChannel Channel `gorm:"type:varchar(20);not null;default:'sms'" json:"preferredChannel"`
	Language         string  `gorm:"type:varchar(10);not null;default:'en'" json:"language"`
	Notes            string  `json:"notes"`
	IsActive         bool    `gorm:"default:true" json:"isActive"`

	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`

	gorm.Model `json:"-"`
}

func (p *Patient) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

func (p *Patient) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// Validate enforces that the patient is reachable: at least one contact
// field is set, and the preferred channel has a matching one.
func (p *Patient) Validate() error {
	if !ValidChannel(p.PreferredChannel) {
		return fmt.Errorf("invalid preferred channel %q", p.PreferredChannel)
	}
	if p.Phone == "" && p.WhatsApp == "" && p.Email == "" {
		return errors.New("patient needs at least one contact field")
	}
	if p.ContactFor(p.PreferredChannel) == "" {
		return ErrMissingContact
	}
	return nil
}

// ContactFor returns the destination address for the given channel,
// or "" when the patient has none.
func (p *Patient) ContactFor(channel Channel) string {
	switch channel {
	case ChannelSMS:
		return p.Phone
	case ChannelWhatsApp:
		return p.WhatsApp
	case ChannelEmail:
		return p.Email
	}
	return ""
}
