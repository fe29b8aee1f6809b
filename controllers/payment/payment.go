package paymentController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"servehours/database"
	"servehours/middleware"
	"servehours/models"
	"servehours/services"
)

// ListTiers returns the public pricing table
func ListTiers(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pricing tiers fetched!", services.ListTiers())
}

// CreateCheckout opens a checkout session with the payment provider
func CreateCheckout(payments *services.Payments) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		reqData, ok := c.Locals("validatedCheckout").(*struct {
			Hours int `json:"hours"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		session, err := payments.CreateCheckout(userID, user.Email, reqData.Hours)
		if err != nil {
			return middleware.RejectionResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
			"checkoutUrl": session.CheckoutURL,
		})
	}
}

// PaymentWebhook receives signed payment confirmations from the provider.
// Bad signatures are refused; any business rejection after that is absorbed
// as received:true so the provider does not keep retrying an event that will
// never succeed. Only store failures return 500, which the provider retries.
func PaymentWebhook(payments *services.Payments) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := c.Body()
		signature := c.Get("X-Payment-Signature")

		_, err := payments.HandlePaymentConfirmed(payload, signature)
		if err != nil {
			r := services.AsRejection(err)
			switch r.Code {
			case services.CodeUpstreamVerification:
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, r.Message, nil)
			case services.CodeInternal:
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, r.Message, nil)
			default:
				log.Printf("Webhook absorbed business rejection: %s", r.Message)
			}
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
	}
}
