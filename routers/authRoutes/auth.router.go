package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "servehours/controllers/auth"
	validators "servehours/validators/auth"
)

// SetupAuthRoutes sets up registration and login routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", validators.Login(), controllers.Login)
}
