package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusMissed, true},
		{StatusScheduled, StatusRescheduled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusMissed, true},
		{StatusConfirmed, StatusScheduled, false},
		{StatusRescheduled, StatusScheduled, true},
		{StatusRescheduled, StatusMissed, false},
		{StatusMissed, StatusRescheduled, true},
		{StatusMissed, StatusConfirmed, false},
		// terminal states accept nothing
		{StatusCompleted, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		appt := Appointment{Status: tt.from}
		assert.Equal(t, tt.allowed, appt.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestAppointment_AcceptsReminders(t *testing.T) {
	accepts := map[AppointmentStatus]bool{
		StatusScheduled:   true,
		StatusConfirmed:   true,
		StatusMissed:      false,
		StatusCompleted:   false,
		StatusCancelled:   false,
		StatusRescheduled: false,
	}

	for status, want := range accepts {
		appt := Appointment{Status: status}
		assert.Equal(t, want, appt.AcceptsReminders(), "status=%s", status)
	}
}

func TestValidAppointmentStatus(t *testing.T) {
	assert.True(t, ValidAppointmentStatus(StatusScheduled))
	assert.True(t, ValidAppointmentStatus(StatusCancelled))
	assert.False(t, ValidAppointmentStatus("pending"))
	assert.False(t, ValidAppointmentStatus(""))
}
