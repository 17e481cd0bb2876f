package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"absensichain_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar dengan urutan: recovery → logger → cors → limiter
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
