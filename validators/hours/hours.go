package hoursValidator

import (
	"github.com/gofiber/fiber/v2"

	"servehours/middleware"
)

// RecordHours validates the hour-logging request. Range checks only; the
// daily-cap decision belongs to the ledger.
func RecordHours() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			EnrollmentID uint `json:"enrollmentId"`
			Hours        int  `json:"hours"`
			Minutes      int  `json:"minutes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.EnrollmentID == 0 {
			errors["enrollmentId"] = "Enrollment ID is required!"
		}
		if reqData.Hours < 0 || reqData.Hours > 24 {
			errors["hours"] = "Hours must be between 0 and 24!"
		}
		if reqData.Minutes < 0 || reqData.Minutes > 59 {
			errors["minutes"] = "Minutes must be between 0 and 59!"
		}
		if reqData.Hours == 0 && reqData.Minutes == 0 {
			errors["hours"] = "Logged time must be greater than zero!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRecordHours", reqData)
		return c.Next()
	}
}
