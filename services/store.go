// services/store.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mediremind-backend/models"
)

// TemplateStore is the gorm-backed reminder template store.
type TemplateStore struct {
	db *gorm.DB
}

func NewTemplateStore(db *gorm.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// Find returns the active templates for a channel+language pair ordered
// by creation time, so tie-breaks in the selector stay deterministic.
func (s *TemplateStore) Find(channel models.Channel, language string) ([]models.ReminderTemplate, error) {
	var templates []models.ReminderTemplate
	err := s.db.
		Where("channel = ? AND language = ? AND is_active = true", channel, language).
		Order("created_at ASC").
		Find(&templates).Error
	return templates, err
}

func (s *TemplateStore) FindAll() ([]models.ReminderTemplate, error) {
	var templates []models.ReminderTemplate
	err := s.db.Order("created_at ASC").Find(&templates).Error
	return templates, err
}

func (s *TemplateStore) Get(id uuid.UUID) (*models.ReminderTemplate, error) {
	var template models.ReminderTemplate
	if err := s.db.Where("id = ?", id).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

// Upsert creates the template or saves changes to an existing one.
func (s *TemplateStore) Upsert(template *models.ReminderTemplate) error {
	if template.ID == uuid.Nil {
		return s.db.Create(template).Error
	}
	return s.db.Save(template).Error
}

func (s *TemplateStore) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.ReminderTemplate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// ReminderLogStore is the gorm-backed append-only reminder log.
type ReminderLogStore struct {
	db *gorm.DB
}

func NewReminderLogStore(db *gorm.DB) *ReminderLogStore {
	return &ReminderLogStore{db: db}
}

// Create appends one send attempt. The unique index on
// (appointment_id, template_id) makes a duplicate insert fail with
// gorm.ErrDuplicatedKey, which overlapping scans rely on.
func (s *ReminderLogStore) Create(entry *models.ReminderLog) error {
	return s.db.Create(entry).Error
}

func (s *ReminderLogStore) Exists(appointmentID, templateID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.ReminderLog{}).
		Where("appointment_id = ? AND template_id = ?", appointmentID, templateID).
		Count(&count).Error
	return count > 0, err
}

func (s *ReminderLogStore) ListByAppointment(appointmentID uuid.UUID) ([]models.ReminderLog, error) {
	var logs []models.ReminderLog
	err := s.db.Where("appointment_id = ?", appointmentID).
		Order("sent_at DESC").
		Find(&logs).Error
	return logs, err
}

func (s *ReminderLogStore) List(limit int) ([]models.ReminderLog, error) {
	var logs []models.ReminderLog
	q := s.db.Order("sent_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&logs).Error
	return logs, err
}

// UpdateDelivery records provider feedback (delivered/responded) on an
// existing log entry. Everything else on the row stays immutable.
func (s *ReminderLogStore) UpdateDelivery(id uuid.UUID, status models.DeliveryStatus, response string) error {
	updates := map[string]interface{}{"status": status}
	if response != "" {
		updates["response"] = response
	}
	result := s.db.Model(&models.ReminderLog{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AppointmentStore serves the scheduler's scan queries.
type AppointmentStore struct {
	db *gorm.DB
}

func NewAppointmentStore(db *gorm.DB) *AppointmentStore {
	return &AppointmentStore{db: db}
}

// Due returns active appointments whose dateTime falls inside
// [now, now+lookahead], with patient and doctor loaded for rendering.
func (s *AppointmentStore) Due(now time.Time, lookahead time.Duration) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.
		Preload("Patient").
		Preload("Doctor").
		Where("status IN ? AND date_time >= ? AND date_time <= ?",
			[]models.AppointmentStatus{models.StatusScheduled, models.StatusConfirmed},
			now, now.Add(lookahead)).
		Order("date_time ASC").
		Find(&appointments).Error
	return appointments, err
}

// UpdateStatus applies a status change, enforcing the transition rules.
func (s *AppointmentStore) UpdateStatus(id uuid.UUID, next models.AppointmentStatus) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.Where("id = ?", id).First(&appt).Error; err != nil {
		return nil, err
	}
	if !appt.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}
	appt.Status = next
	if err := s.db.Save(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// SettingsStore reads and writes per-channel provider settings.
type SettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// ForChannel loads a channel's provider config. A channel with no row
// resolves to a disabled config, which the dispatcher rejects with a
// ConfigError at send time.
func (s *SettingsStore) ForChannel(channel models.Channel) (ProviderConfig, error) {
	var setting models.CommunicationSetting
	if err := s.db.Where("channel = ?", channel).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProviderConfig{}, nil
		}
		return ProviderConfig{}, err
	}
	return ProviderConfig{
		Provider:     setting.Provider,
		Enabled:      setting.Enabled,
		APIKey:       setting.APIKey,
		AccountSID:   setting.AccountSID,
		FromNumber:   setting.FromNumber,
		FromEmail:    setting.FromEmail,
		SMTPHost:     setting.SMTPHost,
		SMTPPort:     setting.SMTPPort,
		SMTPUser:     setting.SMTPUser,
		SMTPPassword: setting.SMTPPassword,
	}, nil
}

// Put creates or replaces the settings row for a channel.
func (s *SettingsStore) Put(setting *models.CommunicationSetting) error {
	var existing models.CommunicationSetting
	err := s.db.Where("channel = ?", setting.Channel).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(setting).Error
	}
	if err != nil {
		return err
	}
	setting.ID = existing.ID
	setting.CreatedAt = existing.CreatedAt
	return s.db.Save(setting).Error
}

// ClinicStore fetches the practice profile used for template variables.
type ClinicStore struct {
	db *gorm.DB
}

func NewClinicStore(db *gorm.DB) *ClinicStore {
	return &ClinicStore{db: db}
}

// Get returns the clinic profile, or a zero value before one is set up.
func (s *ClinicStore) Get() (models.Clinic, error) {
	var clinic models.Clinic
	if err := s.db.First(&clinic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Clinic{}, nil
		}
		return models.Clinic{}, err
	}
	return clinic, nil
}
