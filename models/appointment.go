package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusMissed      AppointmentStatus = "missed"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

// statusTransitions lists the allowed next states per current state.
// Completed and cancelled are terminal.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:   {StatusConfirmed, StatusMissed, StatusCompleted, StatusCancelled, StatusRescheduled},
	StatusConfirmed:   {StatusMissed, StatusCompleted, StatusCancelled, StatusRescheduled},
	StatusRescheduled: {StatusScheduled, StatusConfirmed, StatusCancelled},
	StatusMissed:      {StatusCompleted, StatusRescheduled},
	StatusCompleted:   {},
	StatusCancelled:   {},
}

func ValidAppointmentStatus(s AppointmentStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;index;not null" json:"patientId"`
	DoctorID  uuid.UUID `gorm:"type:uuid;index;not null" json:"doctorId"`

	DateTime time.Time         `gorm:"index;not null" json:"dateTime"`
	Status   AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	Type     string            `gorm:"not null" json:"type"`
	Notes    string            `json:"notes"`
	FollowUp bool              `gorm:"default:false" json:"followUp"`

	Patient       Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor        Doctor        `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	RemindersSent []ReminderLog `gorm:"foreignKey:AppointmentID" json:"remindersSent,omitempty"`

	gorm.Model `json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// CanTransitionTo reports whether the status machine allows moving
// from the current status to next.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, s := range statusTransitions[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// AcceptsReminders reports whether the appointment is still in scope
// for the reminder scheduler. Cancelled and completed appointments
// accept no further reminders.
func (a *Appointment) AcceptsReminders() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}
