package adminRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "servehours/controllers/admin"
	"servehours/middleware"
	"servehours/services"
	validators "servehours/validators/admin"
)

// SetupAdminRoutes sets up administrative enrollment management routes
func SetupAdminRoutes(app *fiber.App, enrollments *services.Enrollments) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Post("/enrollment/grant", validators.GrantEnrollment(), controllers.GrantEnrollment(enrollments))
	adminGroup.Post("/enrollment/:id/status", validators.EnrollmentID(), validators.SetStatus(), controllers.SetEnrollmentStatus(enrollments))
	adminGroup.Post("/enrollment/:id/hours", validators.EnrollmentID(), validators.OverrideHours(), controllers.OverrideHours(enrollments))
}
