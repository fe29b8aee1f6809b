package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "servehours/controllers/user"
	"servehours/middleware"
	"servehours/services"
	validators "servehours/validators/user"
)

// SetupUserRoutes sets up participant profile routes
func SetupUserRoutes(app *fiber.App, enrollments *services.Enrollments) {
	userGroup := app.Group("/user")

	userGroup.Patch("/timezone", middleware.JWTMiddleware, validators.UpdateTimezone(), controllers.UpdateTimezone)
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments(enrollments))
}
