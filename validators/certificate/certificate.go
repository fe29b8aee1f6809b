package certificateValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"servehours/middleware"
)

// GetCertificate validates the enrollment id path parameter
func GetCertificate() fiber.Handler {
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

// Verify validates the public certificate verification request
func Verify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code string `json:"code"`
			Name string `json:"name"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Code = strings.TrimSpace(reqData.Code)
		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Code == "" {
			errors["code"] = "Verification code is required!"
		}
		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}
