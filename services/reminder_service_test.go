package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mediremind-backend/models"
)

type fakeAppointments struct {
	appointments []models.Appointment
	err          error
}

func (f *fakeAppointments) Due(now time.Time, lookahead time.Duration) ([]models.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var due []models.Appointment
	for _, a := range f.appointments {
		if !a.DateTime.Before(now) && !a.DateTime.After(now.Add(lookahead)) {
			due = append(due, a)
		}
	}
	return due, nil
}

type fakeTemplates struct {
	templates []models.ReminderTemplate
	err       error
}

func (f *fakeTemplates) Find(channel models.Channel, language string) ([]models.ReminderTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ReminderTemplate
	for _, t := range f.templates {
		if t.Channel == channel && t.Language == language {
			out = append(out, t)
		}
	}
	return out, nil
}

// fakeLogs mimics the unique index on (appointment_id, template_id).
type fakeLogs struct {
	entries []*models.ReminderLog
}

func (f *fakeLogs) Exists(appointmentID, templateID uuid.UUID) (bool, error) {
	for _, e := range f.entries {
		if e.AppointmentID == appointmentID && e.TemplateID == templateID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLogs) Create(entry *models.ReminderLog) error {
	if exists, _ := f.Exists(entry.AppointmentID, entry.TemplateID); exists {
		return gorm.ErrDuplicatedKey
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeSettings struct {
	configs map[models.Channel]ProviderConfig
}

func (f *fakeSettings) ForChannel(channel models.Channel) (ProviderConfig, error) {
	return f.configs[channel], nil
}

type fakeClinic struct {
	clinic models.Clinic
}

func (f *fakeClinic) Get() (models.Clinic, error) {
	return f.clinic, nil
}

type sendCall struct {
	channel     models.Channel
	destination string
	message     string
}

type fakeDispatcher struct {
	calls   []sendCall
	failFor map[string]error // destination -> error
}

func (f *fakeDispatcher) Send(ctx context.Context, channel models.Channel, destination, message string, cfg ProviderConfig) DeliveryResult {
	f.calls = append(f.calls, sendCall{channel, destination, message})
	if err, ok := f.failFor[destination]; ok {
		return DeliveryResult{Status: models.DeliveryFailed, Err: &ProviderError{Provider: cfg.Provider, Err: err}}
	}
	return DeliveryResult{Success: true, ProviderMessageID: "msg-1", Status: models.DeliverySent}
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(appts *fakeAppointments, templates *fakeTemplates, logs *fakeLogs, dispatcher *fakeDispatcher) *ReminderService {
	return &ReminderService{
		appointments: appts,
		templates:    templates,
		logs:         logs,
		settings: &fakeSettings{configs: map[models.Channel]ProviderConfig{
			models.ChannelWhatsApp: {Provider: "360dialog", Enabled: true, APIKey: "k", FromNumber: "+254700000001"},
			models.ChannelSMS:      {Provider: "twilio", Enabled: true, APIKey: "k", AccountSID: "AC1", FromNumber: "+254700000001"},
		}},
		clinic:     &fakeClinic{clinic: models.Clinic{Name: "Sunrise Clinic", Phone: "+254700000000"}},
		dispatcher: dispatcher,
		interval:   15 * time.Minute,
		lookahead:  14 * 24 * time.Hour,
		now:        func() time.Time { return testNow },
	}
}

func swWhatsAppAppointment() models.Appointment {
	return models.Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		// next morning, so a 1-day template is already due at 09:00
		DateTime: testNow.Add(23 * time.Hour),
		Status:   models.StatusScheduled,
		Type:     "checkup",
		Patient: models.Patient{
			Name:             "Amina Hassan",
			WhatsApp:         "+254711000111",
			PreferredChannel: models.ChannelWhatsApp,
			Language:         "sw",
			IsActive:         true,
		},
		Doctor: models.Doctor{Name: "Dr. Mwangi"},
	}
}

func TestRunScan_EndToEnd(t *testing.T) {
	appt := swWhatsAppAppointment()
	appt.Patient.ID = appt.PatientID

	templates := &fakeTemplates{templates: []models.ReminderTemplate{
		{
			ID: uuid.New(), Name: "sw-wa-1d", Channel: models.ChannelWhatsApp, Language: "sw",
			Body:       "Habari {{patient_name}}, kumbuka miadi yako na {{doctor_name}} tarehe {{appointment_date}} saa {{appointment_time}} katika {{clinic_name}}.",
			TimingDays: 1,
		},
		{
			ID: uuid.New(), Name: "en-sms-1d", Channel: models.ChannelSMS, Language: "en",
			Body:       "Hello {{patient_name}}, your appointment is on {{appointment_date}}.",
			TimingDays: 1,
		},
	}}
	logs := &fakeLogs{}
	dispatcher := &fakeDispatcher{}

	svc := newTestService(&fakeAppointments{appointments: []models.Appointment{appt}}, templates, logs, dispatcher)
	summary := svc.RunScan(context.Background())

	assert.Equal(t, 1, summary.Scanned)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 0, summary.Failed)

	require.Len(t, dispatcher.calls, 1)
	call := dispatcher.calls[0]
	assert.Equal(t, models.ChannelWhatsApp, call.channel)
	assert.Equal(t, "+254711000111", call.destination)
	assert.Contains(t, call.message, "Amina Hassan")
	assert.Contains(t, call.message, "Dr. Mwangi")
	assert.Contains(t, call.message, "Sunrise Clinic")
	assert.NotContains(t, call.message, "{{")

	require.Len(t, logs.entries, 1)
	entry := logs.entries[0]
	assert.Equal(t, appt.ID, entry.AppointmentID)
	assert.Equal(t, appt.PatientID, entry.PatientID)
	assert.Equal(t, models.ChannelWhatsApp, entry.Channel)
	assert.Equal(t, models.DeliverySent, entry.Status)
	assert.Equal(t, "msg-1", entry.ProviderMessageID)
	assert.Equal(t, call.message, entry.MessageContent)
}

func TestRunScan_IdempotentAcrossScans(t *testing.T) {
	appt := swWhatsAppAppointment()
	templates := &fakeTemplates{templates: []models.ReminderTemplate{
		{ID: uuid.New(), Name: "sw-wa-1d", Channel: models.ChannelWhatsApp, Language: "sw", Body: "Habari {{patient_name}}", TimingDays: 1},
	}}
	logs := &fakeLogs{}
	dispatcher := &fakeDispatcher{}

	svc := newTestService(&fakeAppointments{appointments: []models.Appointment{appt}}, templates, logs, dispatcher)

	first := svc.RunScan(context.Background())
	second := svc.RunScan(context.Background())

	assert.Equal(t, 1, first.Sent)
	assert.Equal(t, 0, second.Sent)
	assert.Equal(t, 1, second.Skipped)
	assert.Len(t, dispatcher.calls, 1)
	assert.Len(t, logs.entries, 1)
}

func TestRunScan_FailedSendIsLoggedAndScanContinues(t *testing.T) {
	failing := swWhatsAppAppointment()
	healthy := swWhatsAppAppointment()
	healthy.Patient.WhatsApp = "+254722000222"

	templates := &fakeTemplates{templates: []models.ReminderTemplate{
		{ID: uuid.New(), Name: "sw-wa-1d", Channel: models.ChannelWhatsApp, Language: "sw", Body: "Habari {{patient_name}}", TimingDays: 1},
	}}
	logs := &fakeLogs{}
	dispatcher := &fakeDispatcher{failFor: map[string]error{
		"+254711000111": errors.New("provider unreachable"),
	}}

	svc := newTestService(&fakeAppointments{appointments: []models.Appointment{failing, healthy}}, templates, logs, dispatcher)
	summary := svc.RunScan(context.Background())

	assert.Equal(t, 2, summary.Scanned)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Failed)

	require.Len(t, logs.entries, 2)
	byAppt := map[uuid.UUID]*models.ReminderLog{}
	for _, e := range logs.entries {
		byAppt[e.AppointmentID] = e
	}
	require.Contains(t, byAppt, failing.ID)
	assert.Equal(t, models.DeliveryFailed, byAppt[failing.ID].Status)
	assert.Contains(t, byAppt[failing.ID].ErrorMessage, "provider unreachable")
	assert.Equal(t, models.DeliverySent, byAppt[healthy.ID].Status)
}

func TestRunScan_NoMatchingTemplateMeansNoReminder(t *testing.T) {
	appt := swWhatsAppAppointment()
	// only an en/sms template exists; no fallback
	templates := &fakeTemplates{templates: []models.ReminderTemplate{
		{ID: uuid.New(), Name: "en-sms-1d", Channel: models.ChannelSMS, Language: "en", Body: "Hello", TimingDays: 1},
	}}
	logs := &fakeLogs{}
	dispatcher := &fakeDispatcher{}

	svc := newTestService(&fakeAppointments{appointments: []models.Appointment{appt}}, templates, logs, dispatcher)
	summary := svc.RunScan(context.Background())

	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, dispatcher.calls)
	assert.Empty(t, logs.entries)
}

func TestRunScan_NotYetDueTemplateIsSkipped(t *testing.T) {
	appt := swWhatsAppAppointment()
	appt.DateTime = testNow.Add(5 * 24 * time.Hour) // five days out

	// fires one day before; at five days out it is not yet due
	templates := &fakeTemplates{templates: []models.ReminderTemplate{
		{ID: uuid.New(), Name: "sw-wa-1d", Channel: models.ChannelWhatsApp, Language: "sw", Body: "Habari", TimingDays: 1},
	}}
	logs := &fakeLogs{}
	dispatcher := &fakeDispatcher{}

	svc := newTestService(&fakeAppointments{appointments: []models.Appointment{appt}}, templates, logs, dispatcher)
	summary := svc.RunScan(context.Background())

	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, dispatcher.calls)
	assert.Empty(t, logs.entries)
}

func TestRunScan_TerminalStatusAcceptsNoReminders(t *testing.T) {
	cancelled := swWhatsAppAppointment()
	cancelled.Status = models.StatusCancelled
	completed := swWhatsAppAppointment()
	completed.Status = models.StatusCompleted

	templates := &fakeTemplates{templates: []models.ReminderTemplate{
		{ID: uuid.New(), Name: "sw-wa-1d", Channel: models.ChannelWhatsApp, Language: "sw", Body: "Habari", TimingDays: 1},
	}}
	dispatcher := &fakeDispatcher{}

	svc := newTestService(&fakeAppointments{appointments: []models.Appointment{cancelled, completed}}, templates, &fakeLogs{}, dispatcher)
	summary := svc.RunScan(context.Background())

	assert.Equal(t, 2, summary.Skipped)
	assert.Empty(t, dispatcher.calls)
}

func TestRunScan_PatientWithoutChannelContactIsIsolated(t *testing.T) {
	broken := swWhatsAppAppointment()
	broken.Patient.WhatsApp = "" // preferred channel has no destination
	healthy := swWhatsAppAppointment()

	templates := &fakeTemplates{templates: []models.ReminderTemplate{
		{ID: uuid.New(), Name: "sw-wa-1d", Channel: models.ChannelWhatsApp, Language: "sw", Body: "Habari", TimingDays: 1},
	}}
	logs := &fakeLogs{}
	dispatcher := &fakeDispatcher{}

	svc := newTestService(&fakeAppointments{appointments: []models.Appointment{broken, healthy}}, templates, logs, dispatcher)
	summary := svc.RunScan(context.Background())

	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, healthy.ID, logs.entries[0].AppointmentID)
}

func TestRunScan_MissedWindowStillFiresBeforeAppointment(t *testing.T) {
	// fire time was three days ago; the appointment is still ahead,
	// so a later scan picks the reminder up exactly once
	appt := swWhatsAppAppointment()
	appt.DateTime = testNow.Add(12 * time.Hour)

	templates := &fakeTemplates{templates: []models.ReminderTemplate{
		{ID: uuid.New(), Name: "sw-wa-3d", Channel: models.ChannelWhatsApp, Language: "sw", Body: "Habari", TimingDays: 3},
	}}
	logs := &fakeLogs{}
	dispatcher := &fakeDispatcher{}

	svc := newTestService(&fakeAppointments{appointments: []models.Appointment{appt}}, templates, logs, dispatcher)
	summary := svc.RunScan(context.Background())

	assert.Equal(t, 1, summary.Sent)
	assert.Len(t, logs.entries, 1)
}
