package certificateRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "servehours/controllers/certificate"
	"servehours/middleware"
	"servehours/services"
	validators "servehours/validators/certificate"
)

// SetupCertificateRoutes sets up certificate issuance and public verification
func SetupCertificateRoutes(app *fiber.App, certificates *services.Certificates) {
	certGroup := app.Group("/certificate")

	certGroup.Post("/verify", validators.Verify(), controllers.VerifyCertificate(certificates))
	certGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCertificate(), controllers.GetCertificate(certificates))
}
