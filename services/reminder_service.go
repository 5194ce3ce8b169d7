// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"mediremind-backend/models"
	"mediremind-backend/utils"
)

// Consumer-side views of the stores, so the scan loop is testable with
// in-memory fakes.
type appointmentSource interface {
	Due(now time.Time, lookahead time.Duration) ([]models.Appointment, error)
}

type templateFinder interface {
	Find(channel models.Channel, language string) ([]models.ReminderTemplate, error)
}

type reminderLog interface {
	Exists(appointmentID, templateID uuid.UUID) (bool, error)
	Create(entry *models.ReminderLog) error
}

type settingsSource interface {
	ForChannel(channel models.Channel) (ProviderConfig, error)
}

type clinicSource interface {
	Get() (models.Clinic, error)
}

type messageDispatcher interface {
	Send(ctx context.Context, channel models.Channel, destination, message string, cfg ProviderConfig) DeliveryResult
}

const (
	defaultScanInterval  = 15 * time.Minute
	defaultLookaheadDays = 14
)

// ReminderService runs the reminder pipeline: scan due appointments,
// select a template per patient, render it, dispatch it, and record
// exactly one log entry per attempt.
type ReminderService struct {
	appointments appointmentSource
	templates    templateFinder
	logs         reminderLog
	settings     settingsSource
	clinic       clinicSource
	dispatcher   messageDispatcher

	interval  time.Duration
	lookahead time.Duration
	now       func() time.Time
}

func NewReminderService(db *gorm.DB) *ReminderService {
	interval := defaultScanInterval
	if env := os.Getenv("REMINDER_SCAN_INTERVAL"); env != "" {
		if d, err := time.ParseDuration(env); err == nil {
			interval = d
		}
	}
	lookaheadDays := defaultLookaheadDays
	if env := os.Getenv("REMINDER_LOOKAHEAD_DAYS"); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 {
			lookaheadDays = n
		}
	}

	return &ReminderService{
		appointments: NewAppointmentStore(db),
		templates:    NewTemplateStore(db),
		logs:         NewReminderLogStore(db),
		settings:     NewSettingsStore(db),
		clinic:       NewClinicStore(db),
		dispatcher:   NewDispatcher(),
		interval:     interval,
		lookahead:    time.Duration(lookaheadDays) * 24 * time.Hour,
		now:          time.Now,
	}
}

// StartScheduler runs periodic scans. SkipIfStillRunning drops a timer
// fire that overlaps a scan still in progress; the log's unique index
// covers the remaining races.
func (s *ReminderService) StartScheduler() *cron.Cron {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.RunScan(context.Background())
	})

	c.Start()
	log.Printf("Reminder scheduler started (every %s, lookahead %s)", s.interval, s.lookahead)
	return c
}

// ScanSummary counts the outcomes of one scan.
type ScanSummary struct {
	Scanned int `json:"scanned"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// RunScan processes every due appointment sequentially. An error in one
// appointment never aborts the others.
func (s *ReminderService) RunScan(ctx context.Context) ScanSummary {
	var summary ScanSummary
	now := s.now()

	appointments, err := s.appointments.Due(now, s.lookahead)
	if err != nil {
		log.Printf("Reminder scan: failed to fetch appointments: %v", err)
		return summary
	}

	clinic, err := s.clinic.Get()
	if err != nil {
		log.Printf("Reminder scan: failed to load clinic profile: %v", err)
	}

	for i := range appointments {
		summary.Scanned++
		outcome, err := s.processAppointment(ctx, now, &clinic, &appointments[i])
		if err != nil {
			log.Printf("Reminder scan: appointment %s: %v", appointments[i].ID, err)
		}
		switch outcome {
		case outcomeSent:
			summary.Sent++
		case outcomeFailed:
			summary.Failed++
		default:
			summary.Skipped++
		}
	}

	log.Printf("Reminder scan done: %d scanned, %d sent, %d failed, %d skipped",
		summary.Scanned, summary.Sent, summary.Failed, summary.Skipped)
	return summary
}

type scanOutcome int

const (
	outcomeSkipped scanOutcome = iota
	outcomeSent
	outcomeFailed
)

// processAppointment runs the per-appointment reminder step: select,
// check idempotency, render, dispatch, log. Exactly one ReminderLog row
// is written per dispatch attempt, successful or not.
func (s *ReminderService) processAppointment(ctx context.Context, now time.Time, clinic *models.Clinic, appt *models.Appointment) (scanOutcome, error) {
	if !appt.AcceptsReminders() || appt.DateTime.Before(now) {
		return outcomeSkipped, nil
	}

	patient := &appt.Patient
	if !patient.IsActive {
		return outcomeSkipped, nil
	}
	destination := patient.ContactFor(patient.PreferredChannel)
	if destination == "" {
		return outcomeSkipped, fmt.Errorf("patient %s has no %s contact", patient.ID, patient.PreferredChannel)
	}

	templates, err := s.templates.Find(patient.PreferredChannel, patient.Language)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("fetch templates: %w", err)
	}

	daysUntil := utils.DaysBetween(now, appt.DateTime)
	template := SelectTemplate(templates, patient.Language, patient.PreferredChannel, daysUntil)
	if template == nil {
		// no template for this language+channel: no reminder available
		return outcomeSkipped, nil
	}

	if now.Before(template.FireTime(appt.DateTime)) {
		return outcomeSkipped, nil
	}

	exists, err := s.logs.Exists(appt.ID, template.ID)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("check reminder log: %w", err)
	}
	if exists {
		return outcomeSkipped, nil
	}

	cfg, err := s.settings.ForChannel(patient.PreferredChannel)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("load channel settings: %w", err)
	}

	message := RenderTemplate(template.Body, TemplateVars(patient, &appt.Doctor, clinic, appt))

	result := s.dispatcher.Send(ctx, patient.PreferredChannel, destination, message, cfg)

	entry := &models.ReminderLog{
		AppointmentID:     appt.ID,
		TemplateID:        template.ID,
		PatientID:         patient.ID,
		SentAt:            s.now(),
		Channel:           patient.PreferredChannel,
		Status:            result.Status,
		MessageContent:    message,
		ProviderMessageID: result.ProviderMessageID,
	}
	if result.Err != nil {
		entry.ErrorMessage = result.Err.Error()
		log.Printf("Reminder send failed for appointment %s via %s: %v", appt.ID, patient.PreferredChannel, result.Err)
	} else {
		log.Printf("Reminder sent for appointment %s via %s to %s", appt.ID, patient.PreferredChannel, destination)
	}

	if err := s.logs.Create(entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent scan won the insert race; treat as already sent
			return outcomeSkipped, nil
		}
		return outcomeSkipped, fmt.Errorf("write reminder log: %w", err)
	}

	if result.Success {
		return outcomeSent, nil
	}
	return outcomeFailed, nil
}
