package controllers

import (
	"errors"
	"net/http"
	"time"

	"mediremind-backend/config"
	"mediremind-backend/models"
	"mediremind-backend/services"
	"mediremind-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAppointmentInput defines the expected JSON structure for creating an appointment
type CreateAppointmentInput struct {
	PatientID uuid.UUID `json:"patientId" binding:"required"`
	DoctorID  uuid.UUID `json:"doctorId" binding:"required"`
	DateTime  time.Time `json:"dateTime" binding:"required"`
	Type      string    `json:"type" binding:"required"`
	Notes     string    `json:"notes"`
	FollowUp  bool      `json:"followUp"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment
type UpdateAppointmentInput struct {
	DateTime *time.Time                `json:"dateTime"`
	Status   *models.AppointmentStatus `json:"status"`
	Type     *string                   `json:"type"`
	Notes    *string                   `json:"notes"`
	FollowUp *bool                     `json:"followUp"`
}

// CreateAppointment creates a new appointment
func CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Referenced patient and doctor must exist
	var patient models.Patient
	if err := config.DB.Where("id = ?", input.PatientID).First(&patient).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		return
	}
	var doctor models.Doctor
	if err := config.DB.Where("id = ?", input.DoctorID).First(&doctor).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		return
	}

	appointment := models.Appointment{
		ID:        uuid.New(),
		PatientID: input.PatientID,
		DoctorID:  input.DoctorID,
		DateTime:  input.DateTime,
		Status:    models.StatusScheduled,
		Type:      input.Type,
		Notes:     input.Notes,
		FollowUp:  input.FollowUp,
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments retrieves appointments, optionally filtered by status
// and a dateTime window (?status=&from=&to= in RFC 3339)
func GetAppointments(c *gin.Context) {
	query := config.DB.Preload("Patient").Preload("Doctor").Preload("RemindersSent")

	if status := c.Query("status"); status != "" {
		if !models.ValidAppointmentStatus(models.AppointmentStatus(status)) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp")
			return
		}
		query = query.Where("date_time >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp")
			return
		}
		query = query.Where("date_time <= ?", t)
	}

	var appointments []models.Appointment
	if err := query.Order("date_time ASC").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Patient").Preload("Doctor").Preload("RemindersSent").
		Where("id = ?", appointmentUUID).First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointment updates an existing appointment. Status changes go
// through the transition rules; an invalid transition is a 409.
func UpdateAppointment(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("id = ?", appointmentUUID).First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Status != nil && *input.Status != appointment.Status {
		if !models.ValidAppointmentStatus(*input.Status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		updated, err := services.NewAppointmentStore(config.DB).UpdateStatus(appointment.ID, *input.Status)
		if err != nil {
			if errors.Is(err, services.ErrInvalidTransition) {
				utils.RespondWithError(c, http.StatusConflict, "Invalid status transition")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update status")
			}
			return
		}
		appointment = *updated
	}

	if input.DateTime != nil {
		appointment.DateTime = *input.DateTime
	}
	if input.Type != nil {
		appointment.Type = *input.Type
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}
	if input.FollowUp != nil {
		appointment.FollowUp = *input.FollowUp
	}

	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment soft deletes an appointment
func DeleteAppointment(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	result := config.DB.Where("id = ?", appointmentUUID).Delete(&models.Appointment{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

// GetAppointmentLogs lists the reminder log entries for one appointment
func GetAppointmentLogs(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	logs, err := services.NewReminderLogStore(config.DB).ListByAppointment(appointmentUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminder logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}
