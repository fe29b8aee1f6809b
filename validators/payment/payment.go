package paymentValidator

import (
	"github.com/gofiber/fiber/v2"

	"servehours/middleware"
	"servehours/services"
)

// CreateCheckout validates the checkout request
func CreateCheckout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Hours int `json:"hours"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Hours < services.MinPurchasableHours || reqData.Hours > services.MaxPurchasableHours {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"hours": "Hours must be between 1 and 1000!",
			})
		}

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}
