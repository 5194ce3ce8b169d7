package controllers

import (
	"errors"
	"net/http"

	"mediremind-backend/config"
	"mediremind-backend/models"
	"mediremind-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePatientInput defines the expected JSON structure for creating a patient
type CreatePatientInput struct {
	Name             string         `json:"name" binding:"required"`
	Phone            string         `json:"phone"`
	WhatsApp         string         `json:"whatsapp"`
	Email            string         `json:"email"`
	PreferredChannel models.Channel `json:"preferredChannel" binding:"required,oneof=sms whatsapp email"`
	Language         string         `json:"language"`
	Notes            string         `json:"notes"`
}

// UpdatePatientInput defines the expected JSON structure for updating a patient
type UpdatePatientInput struct {
	Name             *string         `json:"name"`
	Phone            *string         `json:"phone"`
	WhatsApp         *string         `json:"whatsapp"`
	Email            *string         `json:"email"`
	PreferredChannel *models.Channel `json:"preferredChannel" binding:"omitempty,oneof=sms whatsapp email"`
	Language         *string         `json:"language"`
	Notes            *string         `json:"notes"`
	IsActive         *bool           `json:"isActive"`
}

func validatePatientContacts(p *models.Patient) (int, string) {
	if p.Phone != "" && !utils.ValidatePhone(p.Phone) {
		return http.StatusBadRequest, "Invalid phone number format"
	}
	if p.WhatsApp != "" && !utils.ValidatePhone(p.WhatsApp) {
		return http.StatusBadRequest, "Invalid WhatsApp number format"
	}
	if p.Email != "" && !utils.ValidateEmail(p.Email) {
		return http.StatusBadRequest, "Invalid email format"
	}
	if p.Language != "" && !utils.ValidateLanguage(p.Language) {
		return http.StatusBadRequest, "Invalid language code"
	}
	if err := p.Validate(); err != nil {
		return http.StatusBadRequest, err.Error()
	}
	return 0, ""
}

// CreatePatient creates a new patient
func CreatePatient(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	language := input.Language
	if language == "" {
		language = "en"
	}

	patient := models.Patient{
		ID:               uuid.New(),
		CreatedByUserID:  uuid.Must(uuid.Parse(userID.(string))),
		Name:             input.Name,
		Phone:            input.Phone,
		WhatsApp:         input.WhatsApp,
		Email:            input.Email,
		PreferredChannel: input.PreferredChannel,
		Language:         language,
		Notes:            input.Notes,
		IsActive:         true,
	}

	if code, msg := validatePatientContacts(&patient); code != 0 {
		utils.RespondWithError(c, code, msg)
		return
	}

	if err := config.DB.Create(&patient).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create patient")
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// GetPatients retrieves all patients
func GetPatients(c *gin.Context) {
	var patients []models.Patient
	if err := config.DB.Order("name ASC").Find(&patients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve patients")
		return
	}

	c.JSON(http.StatusOK, patients)
}

// GetPatient retrieves a specific patient by ID
func GetPatient(c *gin.Context) {
	patientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}

	var patient models.Patient
	if err := config.DB.Where("id = ?", patientUUID).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, patient)
}

// UpdatePatient updates an existing patient
func UpdatePatient(c *gin.Context) {
	patientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}

	var input UpdatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var patient models.Patient
	if err := config.DB.Where("id = ?", patientUUID).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		patient.Name = *input.Name
	}
	if input.Phone != nil {
		patient.Phone = *input.Phone
	}
	if input.WhatsApp != nil {
		patient.WhatsApp = *input.WhatsApp
	}
	if input.Email != nil {
		patient.Email = *input.Email
	}
	if input.PreferredChannel != nil {
		patient.PreferredChannel = *input.PreferredChannel
	}
	if input.Language != nil {
		patient.Language = *input.Language
	}
	if input.Notes != nil {
		patient.Notes = *input.Notes
	}
	if input.IsActive != nil {
		patient.IsActive = *input.IsActive
	}

	if code, msg := validatePatientContacts(&patient); code != 0 {
		utils.RespondWithError(c, code, msg)
		return
	}

	if err := config.DB.Save(&patient).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update patient")
		return
	}

	c.JSON(http.StatusOK, patient)
}

// DeletePatient soft deletes a patient
func DeletePatient(c *gin.Context) {
	patientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
		return
	}

	result := config.DB.Where("id = ?", patientUUID).Delete(&models.Patient{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete patient")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted successfully"})
}
