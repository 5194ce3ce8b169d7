package main

import (
	"fmt"
	"log"
	"os"

	"mediremind-backend/config"
	"mediremind-backend/controllers"
	"mediremind-backend/models"
	"mediremind-backend/routes"
	"mediremind-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Clinic{},
		&models.Patient{},
		&models.Doctor{},
		&models.Appointment{},
		&models.ReminderTemplate{},
		&models.ReminderLog{},
		&models.CommunicationSetting{},
	)
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	reminderService := services.NewReminderService(config.DB)
	controllers.Reminders = reminderService
	scheduler := reminderService.StartScheduler()
	defer scheduler.Stop()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
