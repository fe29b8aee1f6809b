package hoursController

import (
	"github.com/gofiber/fiber/v2"

	"servehours/middleware"
	"servehours/services"
)

// CapStatus reports how much of today's cap the caller's active enrollment
// has left, scoped to the participant's local calendar day.
func CapStatus(enrollments *services.Enrollments) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		status, err := enrollments.ActiveCapStatus(userID)
		if err != nil {
			return middleware.RejectionResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Hour cap status fetched!", status)
	}
}

// RecordHours credits coursework time against the enrollment
func RecordHours(enrollments *services.Enrollments) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		reqData, ok := c.Locals("validatedRecordHours").(*struct {
			EnrollmentID uint `json:"enrollmentId"`
			Hours        int  `json:"hours"`
			Minutes      int  `json:"minutes"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		result, err := enrollments.RecordHours(userID, reqData.EnrollmentID, reqData.Hours, reqData.Minutes)
		if err != nil {
			return middleware.RejectionResponse(c, err)
		}

		message := "Hours recorded successfully!"
		if result.Completed {
			message = "Hours recorded. Congratulations, your program is complete!"
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
			"accepted":  true,
			"newTotal":  result.NewTotal,
			"completed": result.Completed,
		})
	}
}
