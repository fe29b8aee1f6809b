package userController

import (
	"github.com/gofiber/fiber/v2"

	"servehours/database"
	"servehours/middleware"
	"servehours/models"
	"servehours/services"
)

// UpdateTimezone stores the participant's IANA timezone. The zone is captured
// lazily from the client; the daily cap is scoped by it from then on.
func UpdateTimezone(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedTimezone").(*struct {
		Timezone string `json:"timezone"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user.Timezone = &reqData.Timezone
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update timezone!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Timezone updated!", fiber.Map{
		"timezone": reqData.Timezone,
	})
}

// GetEnrollments lists the participant's enrollments, newest first
func GetEnrollments(enrollments *services.Enrollments) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		list, err := enrollments.ForUser(userID)
		if err != nil {
			return middleware.RejectionResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
			"enrollments": list,
			"total":       len(list),
		})
	}
}
