// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryStatus tracks the outcome of one dispatch attempt.
type DeliveryStatus string

const (
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliveryResponded DeliveryStatus = "responded"
)

func ValidDeliveryStatus(s DeliveryStatus) bool {
	switch s {
	case DeliverySent, DeliveryDelivered, DeliveryFailed, DeliveryResponded:
		return true
	}
	return false
}

// ReminderLog records one send attempt and its outcome. The composite
// unique index on (appointment_id, template_id) is the idempotency key:
// a duplicate insert fails at the storage layer, so overlapping scans
// cannot double-send.
type ReminderLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_appointment_template,priority:1;not null" json:"appointmentId"`
	TemplateID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_appointment_template,priority:2;not null" json:"templateId"`
	PatientID     uuid.UUID `gorm:"type:uuid;index;not null" json:"patientId"`

	SentAt            time.Time      `json:"timestamp"`
	Channel           Channel        `gorm:"type:varchar(20);not null" json:"channel"`
	Status            DeliveryStatus `gorm:"type:varchar(20);not null;default:'sent'" json:"status"`
	MessageContent    string         `gorm:"type:text;not null" json:"messageContent"`
	Response          string         `gorm:"type:text" json:"response,omitempty"`
	ErrorMessage      string         `gorm:"type:text" json:"errorMessage,omitempty"`
	ProviderMessageID string         `gorm:"type:varchar(100)" json:"providerMessageId,omitempty"`

	gorm.Model `json:"-"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.SentAt.IsZero() {
		r.SentAt = time.Now()
	}
	return
}
