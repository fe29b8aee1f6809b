package hoursRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "servehours/controllers/hours"
	"servehours/middleware"
	"servehours/services"
	validators "servehours/validators/hours"
)

// SetupHoursRoutes sets up hour-accounting routes
func SetupHoursRoutes(app *fiber.App, enrollments *services.Enrollments) {
	hoursGroup := app.Group("/hours")

	hoursGroup.Get("/status", middleware.JWTMiddleware, controllers.CapStatus(enrollments))
	hoursGroup.Post("/record", middleware.JWTMiddleware, validators.RecordHours(), controllers.RecordHours(enrollments))
}
