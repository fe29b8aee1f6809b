package adminController

import (
	"github.com/gofiber/fiber/v2"

	"servehours/middleware"
	"servehours/models"
	"servehours/services"
)

// GrantEnrollment opens an enrollment without payment, for court-ordered
// participants whose fees are waived or handled offline.
func GrantEnrollment(enrollments *services.Enrollments) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedGrant").(*struct {
			ParticipantID uint `json:"participantId"`
			Hours         int  `json:"hours"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		enrollment, err := enrollments.Create(reqData.ParticipantID, reqData.Hours, nil, 0)
		if err != nil {
			return middleware.RejectionResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment granted!", enrollment)
	}
}

// SetEnrollmentStatus applies suspend/resume/complete to an enrollment
func SetEnrollmentStatus(enrollments *services.Enrollments) fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentID := c.Locals("enrollmentID").(uint)
		action := c.Locals("validatedAction").(string)

		enrollment, err := enrollments.SetStatus(enrollmentID, action)
		if err != nil {
			return middleware.RejectionResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status updated!", enrollment)
	}
}

// OverrideHours sets hours_completed directly and re-evaluates completion
func OverrideHours(enrollments *services.Enrollments) fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentID := c.Locals("enrollmentID").(uint)
		newHours := c.Locals("validatedNewHours").(float64)

		enrollment, err := enrollments.OverrideHours(enrollmentID, newHours)
		if err != nil {
			return middleware.RejectionResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment hours updated!", fiber.Map{
			"success":     true,
			"newHours":    enrollment.HoursCompleted,
			"isCompleted": enrollment.Status == models.EnrollmentCompleted,
		})
	}
}
