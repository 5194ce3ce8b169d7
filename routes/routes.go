package routes

import (
	"os"
	"strings"

	"mediremind-backend/config"
	"mediremind-backend/controllers"
	"mediremind-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Patient routes
		patients := api.Group("/patients")
		{
			patients.POST("", controllers.CreatePatient)
			patients.GET("", controllers.GetPatients)
			patients.GET("/:id", controllers.GetPatient)
			patients.PUT("/:id", controllers.UpdatePatient)
			patients.DELETE("/:id", controllers.DeletePatient)
		}

		// Doctor routes
		doctors := api.Group("/doctors")
		{
			doctors.POST("", controllers.CreateDoctor)
			doctors.GET("", controllers.GetDoctors)
			doctors.GET("/:id", controllers.GetDoctor)
			doctors.PUT("/:id", controllers.UpdateDoctor)
			doctors.DELETE("/:id", controllers.DeleteDoctor)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.GET("/:id/logs", controllers.GetAppointmentLogs)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
		}

		// Reminder template and log routes
		reminders := api.Group("/reminders")
		{
			reminders.POST("/templates", controllers.CreateReminderTemplate)
			reminders.GET("/templates", controllers.GetReminderTemplates)
			reminders.GET("/templates/:id", controllers.GetReminderTemplate)
			reminders.PUT("/templates/:id", controllers.UpdateReminderTemplate)
			reminders.DELETE("/templates/:id", controllers.DeleteReminderTemplate)

			reminders.GET("/logs", controllers.GetReminderLogs)
			reminders.POST("/logs", controllers.CreateReminderLog)
			reminders.PUT("/logs/:id/delivery", controllers.UpdateReminderLogDelivery)

			reminders.POST("/run", controllers.TriggerReminderScan)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("/communication", controllers.GetCommunicationSettings)
			settings.PUT("/communication/:channel", controllers.UpdateCommunicationSetting)
			settings.GET("/clinic", controllers.GetClinicProfile)
			settings.PUT("/clinic", controllers.UpdateClinicProfile)
		}
	}

	return r
}
