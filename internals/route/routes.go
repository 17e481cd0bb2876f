package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attCtrl "absensichain_backend/internals/features/attendance/controller"
	attRoute "absensichain_backend/internals/features/attendance/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, ctrl *attCtrl.AttendanceController) {
	startTime = time.Now()

	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AttendanceRoutes...")
	attRoute.AttendanceRoutes(app, ctrl)
}

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	// UI statis lama tetap dilayani dari templates/
	app.Static("/", "./templates")

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		uptime := time.Since(startTime).Seconds()

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(uptime),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})
}
