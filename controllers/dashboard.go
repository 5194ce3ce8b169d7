package controllers

import (
	"fmt"
	"net/http"
	"time"

	"mediremind-backend/config"
	"mediremind-backend/models"
	"mediremind-backend/utils"

	"github.com/gin-gonic/gin"
)

type ChannelStats struct {
	Channel      models.Channel `json:"channel"`
	Sent         int64          `json:"sent"`
	Delivered    int64          `json:"delivered"`
	Failed       int64          `json:"failed"`
	Responded    int64          `json:"responded"`
	DeliveryRate float64        `json:"deliveryRate"`
	ResponseRate float64        `json:"responseRate"`
}

type UpcomingAppointment struct {
	ID            string `json:"id"`
	PatientName   string `json:"patientName"`
	DoctorName    string `json:"doctorName"`
	DateTime      string `json:"dateTime"`
	When          string `json:"when"` // e.g. "Today", "Tomorrow", "3 days"
	Status        string `json:"status"`
	RemindersSent int64  `json:"remindersSent"`
}

// GetDashboardOverview returns reminder effectiveness statistics and the
// upcoming appointment list. Reads only; never touches the scheduler.
func GetDashboardOverview(c *gin.Context) {
	// Totals by delivery status
	var totalReminders, totalFailed, totalDelivered, totalResponded int64
	config.DB.Model(&models.ReminderLog{}).Count(&totalReminders)
	config.DB.Model(&models.ReminderLog{}).Where("status = ?", models.DeliveryFailed).Count(&totalFailed)
	config.DB.Model(&models.ReminderLog{}).Where("status = ?", models.DeliveryDelivered).Count(&totalDelivered)
	config.DB.Model(&models.ReminderLog{}).Where("status = ?", models.DeliveryResponded).Count(&totalResponded)

	// Confirmation rate: confirmed share of appointments that got a reminder
	var remindedAppointments, confirmedAfterReminder int64
	config.DB.Model(&models.ReminderLog{}).Distinct("appointment_id").Count(&remindedAppointments)
	config.DB.Raw(`
        SELECT COUNT(DISTINCT a.id) FROM appointments a
        JOIN reminder_logs r ON r.appointment_id = a.id
        WHERE a.status = ? AND a.deleted_at IS NULL
    `, models.StatusConfirmed).Scan(&confirmedAfterReminder)

	confirmationRate := 0.0
	if remindedAppointments > 0 {
		confirmationRate = float64(confirmedAfterReminder) / float64(remindedAppointments)
	}

	// Per-channel performance
	channels := []models.Channel{models.ChannelSMS, models.ChannelWhatsApp, models.ChannelEmail}
	channelStats := make([]ChannelStats, 0, len(channels))
	for _, channel := range channels {
		var stats ChannelStats
		stats.Channel = channel
		config.DB.Model(&models.ReminderLog{}).Where("channel = ?", channel).Count(&stats.Sent)
		config.DB.Model(&models.ReminderLog{}).Where("channel = ? AND status = ?", channel, models.DeliveryDelivered).Count(&stats.Delivered)
		config.DB.Model(&models.ReminderLog{}).Where("channel = ? AND status = ?", channel, models.DeliveryFailed).Count(&stats.Failed)
		config.DB.Model(&models.ReminderLog{}).Where("channel = ? AND status = ?", channel, models.DeliveryResponded).Count(&stats.Responded)
		if stats.Sent > 0 {
			stats.DeliveryRate = float64(stats.Delivered+stats.Responded) / float64(stats.Sent)
			stats.ResponseRate = float64(stats.Responded) / float64(stats.Sent)
		}
		channelStats = append(channelStats, stats)
	}

	// Upcoming appointments for the next 7 days
	now := time.Now()
	var appointments []models.Appointment
	config.DB.Preload("Patient").Preload("Doctor").
		Where("status IN ? AND date_time >= ? AND date_time <= ?",
			[]models.AppointmentStatus{models.StatusScheduled, models.StatusConfirmed},
			now, now.AddDate(0, 0, 7)).
		Order("date_time ASC").
		Limit(10).
		Find(&appointments)

	upcoming := make([]UpcomingAppointment, 0, len(appointments))
	for _, appt := range appointments {
		daysUntil := utils.DaysBetween(now, appt.DateTime)
		var when string
		switch daysUntil {
		case 0:
			when = "Today"
		case 1:
			when = "Tomorrow"
		default:
			when = fmt.Sprintf("%d days", daysUntil)
		}

		var sentCount int64
		config.DB.Model(&models.ReminderLog{}).Where("appointment_id = ?", appt.ID).Count(&sentCount)

		upcoming = append(upcoming, UpcomingAppointment{
			ID:            appt.ID.String(),
			PatientName:   appt.Patient.Name,
			DoctorName:    appt.Doctor.Name,
			DateTime:      appt.DateTime.Format(time.RFC3339),
			When:          when,
			Status:        string(appt.Status),
			RemindersSent: sentCount,
		})
	}

	// Missed-appointment rate over the last 30 days
	var recentTotal, recentMissed int64
	since := now.AddDate(0, 0, -30)
	config.DB.Model(&models.Appointment{}).Where("date_time >= ? AND date_time <= ?", since, now).Count(&recentTotal)
	config.DB.Model(&models.Appointment{}).Where("date_time >= ? AND date_time <= ? AND status = ?", since, now, models.StatusMissed).Count(&recentMissed)

	missedRate := 0.0
	if recentTotal > 0 {
		missedRate = float64(recentMissed) / float64(recentTotal)
	}

	c.JSON(http.StatusOK, gin.H{
		"reminderStats": gin.H{
			"total":     totalReminders,
			"failed":    totalFailed,
			"delivered": totalDelivered,
			"responded": totalResponded,
		},
		"confirmationRate":     confirmationRate,
		"missedRate":           missedRate,
		"channelPerformance":   channelStats,
		"upcomingAppointments": upcoming,
	})
}
