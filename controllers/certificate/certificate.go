package certificateController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"servehours/database"
	"servehours/middleware"
	"servehours/models"
	"servehours/services"
	"servehours/utils"
)

// GetCertificate issues (on first request) or fetches the certificate for a
// completed enrollment the caller owns.
func GetCertificate(certificates *services.Certificates) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		enrollmentID := c.Locals("enrollmentID").(uint)

		cert, created, err := certificates.IssueOrFetch(enrollmentID, userID)
		if err != nil {
			return middleware.RejectionResponse(c, err)
		}

		// Notify only on first issuance; later fetches just return the record.
		if created {
			var user models.User
			if err := database.Database.Db.First(&user, userID).Error; err == nil {
				go func() {
					if err := utils.SendCertificateEmail(user.Name, user.Email, cert.VerificationCode); err != nil {
						log.Printf("Failed to send certificate email: %v", err)
					}
				}()
			}
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", cert)
	}
}

// VerifyCertificate lets a third party confirm a certificate by code and name
func VerifyCertificate(certificates *services.Certificates) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedVerify").(*struct {
			Code string `json:"code"`
			Name string `json:"name"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		record, err := certificates.Verify(reqData.Code, reqData.Name)
		if err != nil {
			return middleware.RejectionResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified!", record)
	}
}
