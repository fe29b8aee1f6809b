package paymentRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "servehours/controllers/payment"
	"servehours/middleware"
	"servehours/services"
	validators "servehours/validators/payment"
)

// SetupPaymentRoutes sets up checkout and webhook routes. The webhook is
// unauthenticated on purpose; its signature check is the authentication.
func SetupPaymentRoutes(app *fiber.App, payments *services.Payments) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Get("/tiers", controllers.ListTiers)
	paymentGroup.Post("/checkout", middleware.JWTMiddleware, validators.CreateCheckout(), controllers.CreateCheckout(payments))
	paymentGroup.Post("/webhook", controllers.PaymentWebhook(payments))
}
