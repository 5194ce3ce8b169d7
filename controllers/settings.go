// controllers/settings.go
package controllers

import (
	"net/http"

	"mediremind-backend/config"
	"mediremind-backend/models"
	"mediremind-backend/services"
	"mediremind-backend/utils"

	"github.com/gin-gonic/gin"
)

// UpdateSettingInput defines the per-channel provider settings payload
type UpdateSettingInput struct {
	Enabled    *bool  `json:"enabled"`
	Provider   string `json:"provider" binding:"required"`
	APIKey     string `json:"apiKey"`
	AccountSID string `json:"accountSid"`
	FromNumber string `json:"fromNumber"`
	FromEmail  string `json:"fromEmail"`

	SMTPHost     string `json:"smtpHost"`
	SMTPPort     int    `json:"smtpPort"`
	SMTPUser     string `json:"smtpUser"`
	SMTPPassword string `json:"smtpPassword"`
}

// GetCommunicationSettings returns the settings row for every channel
func GetCommunicationSettings(c *gin.Context) {
	var settings []models.CommunicationSetting
	if err := config.DB.Order("channel ASC").Find(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateCommunicationSetting replaces the settings for one channel
func UpdateCommunicationSetting(c *gin.Context) {
	channel := models.Channel(c.Param("channel"))
	if !models.ValidChannel(channel) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown channel")
		return
	}

	var input UpdateSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	setting := models.CommunicationSetting{
		Channel:      channel,
		Provider:     input.Provider,
		APIKey:       input.APIKey,
		AccountSID:   input.AccountSID,
		FromNumber:   input.FromNumber,
		FromEmail:    input.FromEmail,
		SMTPHost:     input.SMTPHost,
		SMTPPort:     input.SMTPPort,
		SMTPUser:     input.SMTPUser,
		SMTPPassword: input.SMTPPassword,
	}
	if input.Enabled != nil {
		setting.Enabled = *input.Enabled
	}

	if err := services.NewSettingsStore(config.DB).Put(&setting); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	c.JSON(http.StatusOK, setting)
}

// UpdateClinicInput defines the clinic profile payload
type UpdateClinicInput struct {
	Name           string       `json:"name" binding:"required"`
	Phone          string       `json:"phone"`
	Email          string       `json:"email"`
	Address        string       `json:"address"`
	OperatingHours models.JSONB `json:"operatingHours"`
}

// GetClinicProfile returns the practice profile
func GetClinicProfile(c *gin.Context) {
	clinic, err := services.NewClinicStore(config.DB).Get()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clinic profile")
		return
	}

	c.JSON(http.StatusOK, clinic)
}

// UpdateClinicProfile creates or updates the practice profile
func UpdateClinicProfile(c *gin.Context) {
	var input UpdateClinicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	clinic, err := services.NewClinicStore(config.DB).Get()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clinic profile")
		return
	}

	clinic.Name = input.Name
	clinic.Phone = input.Phone
	clinic.Email = input.Email
	clinic.Address = input.Address
	if input.OperatingHours != nil {
		clinic.OperatingHours = input.OperatingHours
	}

	if err := config.DB.Save(&clinic).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save clinic profile")
		return
	}

	c.JSON(http.StatusOK, clinic)
}
