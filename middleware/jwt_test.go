package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servehours/config"
	"servehours/services"
)

func setupTestConfig() {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}
}

func TestJWTMiddleware(t *testing.T) {
	setupTestConfig()

	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		userID := c.Locals("userId").(uint)
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{"userId": userID})
	})

	token, err := GenerateJWT(42, "Jane Doe", "PARTICIPANT", "jane@example.com")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, fiber.StatusOK},
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRejectionResponseStatusMapping(t *testing.T) {
	setupTestConfig()

	tests := []struct {
		code       services.RejectCode
		wantStatus int
	}{
		{services.CodeInvalidInput, fiber.StatusBadRequest},
		{services.CodeUnauthorized, fiber.StatusUnauthorized},
		{services.CodeForbidden, fiber.StatusForbidden},
		{services.CodeNotFound, fiber.StatusNotFound},
		{services.CodeConflict, fiber.StatusConflict},
		{services.CodeUpstreamVerification, fiber.StatusBadRequest},
		{services.CodeNameMismatch, fiber.StatusUnprocessableEntity},
		{services.CodeInternal, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return RejectionResponse(c, &services.Rejection{Code: tt.code, Message: "nope"})
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
