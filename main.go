package main

import (
	"log"
	"time"

	"coursepay/config"
	paymentController "coursepay/controllers/payment"
	"coursepay/database"
	"coursepay/gateway"
	paymentRoutes "coursepay/routers/paymentRoutes"
	"coursepay/store"
	"coursepay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database startup failed: %v", err)
	}

	courses := store.NewCourseStore(db)
	enrollments := store.NewEnrollmentStore(db)
	events := store.NewEventLog(db)

	processor := gateway.NewClient(
		cfg.PaymentAPIURL,
		cfg.PaymentSecretKey,
		time.Duration(cfg.PaymentTimeoutSec)*time.Second,
	)

	var notifier paymentController.Notifier
	if mailer := utils.NewMailer(cfg); mailer != nil {
		notifier = mailer
	}

	handler := paymentController.NewHandler(cfg, courses, enrollments, processor, events, notifier)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST",
		AllowHeaders: "Content-Type,x-user-id," + gateway.SignatureHeader,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	paymentRoutes.SetupPaymentRoutes(app, handler)

	reconciler := utils.StartReconcileScheduler(events, enrollments)
	defer reconciler.Stop()

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
