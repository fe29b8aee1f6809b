package adminValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"servehours/middleware"
)

// GrantEnrollment validates the unpaid administrative grant request
func GrantEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ParticipantID uint `json:"participantId"`
			Hours         int  `json:"hours"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ParticipantID == 0 {
			errors["participantId"] = "Participant ID is required!"
		}
		if reqData.Hours < 1 {
			errors["hours"] = "Hours must be at least 1!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGrant", reqData)
		return c.Next()
	}
}

// EnrollmentID validates the enrollment id path parameter
func EnrollmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Enrollment ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		c.Locals("enrollmentID", uint(id))
		return c.Next()
	}
}

// SetStatus validates the administrative status action
func SetStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Action string `json:"action"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Action = strings.ToLower(strings.TrimSpace(reqData.Action))
		switch reqData.Action {
		case "suspend", "resume", "complete":
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"action": "Action must be one of suspend, resume or complete!",
			})
		}

		c.Locals("validatedAction", reqData.Action)
		return c.Next()
	}
}

// OverrideHours validates the administrative hour override
func OverrideHours() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			NewHours *float64 `json:"newHours"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.NewHours == nil || *reqData.NewHours < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"newHours": "New hours must be a non-negative number!",
			})
		}

		c.Locals("validatedNewHours", *reqData.NewHours)
		return c.Next()
	}
}
