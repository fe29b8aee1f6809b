package main

import (
	"log"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"servehours/config"
	"servehours/database"
	adminRoutes "servehours/routers/adminRoutes"
	authRoutes "servehours/routers/authRoutes"
	certificateRoutes "servehours/routers/certificateRoutes"
	hoursRoutes "servehours/routers/hoursRoutes"
	paymentRoutes "servehours/routers/paymentRoutes"
	userRoutes "servehours/routers/userRoutes"
	"servehours/services"
	"servehours/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	// Engine components; constructed once here, injected everywhere below
	ledger := services.NewLedger(db)
	enrollments := services.NewEnrollments(db, ledger)
	certificates := services.NewCertificates(db)

	paymentClient := resty.New().
		SetBaseURL(config.AppConfig.PaymentApiURL).
		SetAuthToken(config.AppConfig.PaymentApiKey)
	payments := services.NewPayments(
		db,
		enrollments,
		paymentClient,
		config.AppConfig.PaymentWebhookSecret,
		config.AppConfig.CheckoutSuccessURL,
		config.AppConfig.CheckoutCancelURL,
	)

	utils.InitializeCheckoutScheduler(db)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization,X-Payment-Signature",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app, enrollments)
	hoursRoutes.SetupHoursRoutes(app, enrollments)
	paymentRoutes.SetupPaymentRoutes(app, payments)
	certificateRoutes.SetupCertificateRoutes(app, certificates)
	adminRoutes.SetupAdminRoutes(app, enrollments)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
