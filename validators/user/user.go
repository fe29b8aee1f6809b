package userValidator

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"servehours/middleware"
)

// UpdateTimezone validates the timezone capture request. The zone must be a
// resolvable IANA identifier; the engine's fallback chain handles the rest.
func UpdateTimezone() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Timezone string `json:"timezone"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Timezone = strings.TrimSpace(reqData.Timezone)
		if reqData.Timezone == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"timezone": "Timezone is required!"})
		}
		if _, err := time.LoadLocation(reqData.Timezone); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"timezone": "Unknown IANA timezone identifier!"})
		}

		c.Locals("validatedTimezone", reqData)
		return c.Next()
	}
}
