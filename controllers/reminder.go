// controllers/reminder.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"mediremind-backend/config"
	"mediremind-backend/models"
	"mediremind-backend/services"
	"mediremind-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminders is the running reminder service, wired in main
var Reminders *services.ReminderService

// CreateTemplateInput defines the expected JSON structure
type CreateTemplateInput struct {
	Name        string         `json:"name" binding:"required"`
	Channel     models.Channel `json:"channel" binding:"required,oneof=sms whatsapp email"`
	Language    string         `json:"language" binding:"required"`
	Body        string         `json:"body" binding:"required"`
	TimingDays  int            `json:"timingDays" binding:"min=0"`
	TimingHours int            `json:"timingHours" binding:"omitempty,min=0,max=23"`
}

// UpdateTemplateInput defines the expected JSON structure
type UpdateTemplateInput struct {
	Name        *string         `json:"name"`
	Channel     *models.Channel `json:"channel" binding:"omitempty,oneof=sms whatsapp email"`
	Language    *string         `json:"language"`
	Body        *string         `json:"body"`
	TimingDays  *int            `json:"timingDays" binding:"omitempty,min=0"`
	TimingHours *int            `json:"timingHours" binding:"omitempty,min=0,max=23"`
	IsActive    *bool           `json:"isActive"`
}

// CreateReminderTemplate creates a new reminder template
func CreateReminderTemplate(c *gin.Context) {
	var input CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateLanguage(input.Language) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid language code")
		return
	}

	// Template names are unique
	var existing models.ReminderTemplate
	if err := config.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Template with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	template := models.ReminderTemplate{
		ID:          uuid.New(),
		Name:        input.Name,
		Channel:     input.Channel,
		Language:    input.Language,
		Body:        input.Body,
		TimingDays:  input.TimingDays,
		TimingHours: input.TimingHours,
		IsActive:    true,
	}

	if err := services.NewTemplateStore(config.DB).Upsert(&template); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetReminderTemplates retrieves all reminder templates
func GetReminderTemplates(c *gin.Context) {
	store := services.NewTemplateStore(config.DB)

	channel := c.Query("channel")
	language := c.Query("language")

	var templates []models.ReminderTemplate
	var err error
	if channel != "" && language != "" {
		templates, err = store.Find(models.Channel(channel), language)
	} else {
		templates, err = store.FindAll()
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// GetReminderTemplate retrieves a specific template by ID
func GetReminderTemplate(c *gin.Context) {
	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	template, err := services.NewTemplateStore(config.DB).Get(templateUUID)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, template)
}

// UpdateReminderTemplate updates an existing template
func UpdateReminderTemplate(c *gin.Context) {
	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var input UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	store := services.NewTemplateStore(config.DB)
	template, err := store.Get(templateUUID)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil && *input.Name != template.Name {
		var existing models.ReminderTemplate
		if err := config.DB.Where("name = ?", *input.Name).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Template with this name already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		template.Name = *input.Name
	}
	if input.Channel != nil {
		template.Channel = *input.Channel
	}
	if input.Language != nil {
		if !utils.ValidateLanguage(*input.Language) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid language code")
			return
		}
		template.Language = *input.Language
	}
	if input.Body != nil {
		template.Body = *input.Body
	}
	if input.TimingDays != nil {
		template.TimingDays = *input.TimingDays
	}
	if input.TimingHours != nil {
		template.TimingHours = *input.TimingHours
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := store.Upsert(template); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteReminderTemplate deletes a template
func DeleteReminderTemplate(c *gin.Context) {
	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	if err := services.NewTemplateStore(config.DB).Delete(templateUUID); err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete template")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

// CreateLogInput defines the expected JSON structure for a manual log entry
type CreateLogInput struct {
	AppointmentID  uuid.UUID             `json:"appointmentId" binding:"required"`
	TemplateID     uuid.UUID             `json:"templateId" binding:"required"`
	PatientID      uuid.UUID             `json:"patientId" binding:"required"`
	Channel        models.Channel        `json:"channel" binding:"required,oneof=sms whatsapp email"`
	Status         models.DeliveryStatus `json:"status" binding:"omitempty,oneof=sent delivered failed responded"`
	MessageContent string                `json:"messageContent" binding:"required"`
	Response       string                `json:"response"`
}

// GetReminderLogs retrieves reminder logs, newest first (?limit=)
func GetReminderLogs(c *gin.Context) {
	limit := 0
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	logs, err := services.NewReminderLogStore(config.DB).List(limit)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminder logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}

// CreateReminderLog records a manual send attempt
func CreateReminderLog(c *gin.Context) {
	var input CreateLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	status := input.Status
	if status == "" {
		status = models.DeliverySent
	}

	entry := models.ReminderLog{
		AppointmentID:  input.AppointmentID,
		TemplateID:     input.TemplateID,
		PatientID:      input.PatientID,
		Channel:        input.Channel,
		Status:         status,
		MessageContent: input.MessageContent,
		Response:       input.Response,
	}

	if err := services.NewReminderLogStore(config.DB).Create(&entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "Reminder already logged for this appointment and template")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reminder log")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateLogDeliveryInput defines the delivery feedback JSON structure
type UpdateLogDeliveryInput struct {
	Status   models.DeliveryStatus `json:"status" binding:"required,oneof=sent delivered failed responded"`
	Response string                `json:"response"`
}

// UpdateReminderLogDelivery records delivery feedback on a log entry
func UpdateReminderLogDelivery(c *gin.Context) {
	logUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid log ID format")
		return
	}

	var input UpdateLogDeliveryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := services.NewReminderLogStore(config.DB).UpdateDelivery(logUUID, input.Status, input.Response); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reminder log not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reminder log")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder log updated"})
}

// TriggerReminderScan runs one reminder scan immediately
func TriggerReminderScan(c *gin.Context) {
	if Reminders == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Reminder service not running")
		return
	}

	summary := Reminders.RunScan(context.Background())
	c.JSON(http.StatusOK, summary)
}
