package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/alibiomar/meninx/internal/api"
	"github.com/alibiomar/meninx/internal/auth"
	"github.com/alibiomar/meninx/internal/booking"
	"github.com/alibiomar/meninx/internal/metrics"
	"github.com/alibiomar/meninx/internal/repository"
	"github.com/alibiomar/meninx/internal/service"
)

const sessionTTL = 30 * time.Minute

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	carRepo := repository.NewCarRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	accessoryRepo := repository.NewAccessoryRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)
	jobRepo := repository.NewJobRepository(db)

	smsEnabled := os.Getenv("TWILIO_ACCOUNT_SID") != "" && os.Getenv("TWILIO_AUTH_TOKEN") != ""
	notifier := service.NewNotifyService(os.Getenv("ADMIN_EMAIL"), smsEnabled)
	payments := service.NewPaymentService(os.Getenv("STRIPE_SECRET_KEY"))
	if !payments.Enabled() {
		log.Println("WARNING: STRIPE_SECRET_KEY not set, online deposit payments disabled")
	}

	rentalService := service.NewRentalService(carRepo, reservationRepo, notifier, payments)
	adminService := service.NewAdminService(carRepo, accessoryRepo, testimonialRepo, reservationRepo, analyticsRepo)
	adminAuthService := service.NewAdminAuthService(adminAuthRepo)

	sessions := booking.NewManager(rentalService, notifier, sessionTTL)
	jobService := service.NewJobService(jobRepo, sessions)

	bookingHandler := api.NewBookingHandler(sessions, rentalService)
	userHandler := api.NewUserHandler(rentalService, accessoryRepo, testimonialRepo)
	adminHandler := api.NewAdminHandler(adminService)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthService)
	stripeHandler := api.NewStripeWebhookHandler(os.Getenv("STRIPE_WEBHOOK_SECRET"), reservationRepo, notifier)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/cars", userHandler.ListCars).Methods("GET")
	r.HandleFunc("/api/cars/{id}", userHandler.GetCar).Methods("GET")
	r.HandleFunc("/api/availability", userHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/reservations", userHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{code}", userHandler.GetReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{code}", userHandler.CancelReservation).Methods("DELETE")
	r.HandleFunc("/api/accessories", userHandler.ListAccessories).Methods("GET")
	r.HandleFunc("/api/testimonials", userHandler.ListTestimonials).Methods("GET")

	// Booking wizard sessions
	r.HandleFunc("/api/booking", bookingHandler.StartSession).Methods("POST")
	r.HandleFunc("/api/booking/{id}", bookingHandler.GetSession).Methods("GET")
	r.HandleFunc("/api/booking/{id}/customer", bookingHandler.SetCustomerInfo).Methods("PUT")
	r.HandleFunc("/api/booking/{id}/car", bookingHandler.SelectCar).Methods("PUT")
	r.HandleFunc("/api/booking/{id}/period", bookingHandler.SetPeriod).Methods("PUT")
	r.HandleFunc("/api/booking/{id}/next", bookingHandler.Next).Methods("POST")
	r.HandleFunc("/api/booking/{id}/back", bookingHandler.Back).Methods("POST")
	r.HandleFunc("/api/booking/{id}/submit", bookingHandler.Submit).Methods("POST")
	r.HandleFunc("/api/booking/{id}/reset", bookingHandler.Reset).Methods("POST")

	// Payments and ops
	r.HandleFunc("/api/stripe/webhook", stripeHandler.HandleWebhook).Methods("POST")
	r.HandleFunc("/api/admin/login", adminAuthHandler.Login).Methods("POST")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/admins", adminAuthHandler.CreateAdmin).Methods("POST")
	admin.HandleFunc("/cars", adminHandler.CreateCar).Methods("POST")
	admin.HandleFunc("/cars/{id}", adminHandler.UpdateCar).Methods("PUT")
	admin.HandleFunc("/cars/{id}", adminHandler.DeleteCar).Methods("DELETE")
	admin.HandleFunc("/accessories", adminHandler.CreateAccessory).Methods("POST")
	admin.HandleFunc("/accessories/{id}", adminHandler.UpdateAccessory).Methods("PUT")
	admin.HandleFunc("/accessories/{id}", adminHandler.DeleteAccessory).Methods("DELETE")
	admin.HandleFunc("/testimonials", adminHandler.CreateTestimonial).Methods("POST")
	admin.HandleFunc("/testimonials/{id}", adminHandler.DeleteTestimonial).Methods("DELETE")
	admin.HandleFunc("/reservations", adminHandler.ListReservations).Methods("GET")
	admin.HandleFunc("/reservations/{id}", adminHandler.GetReservation).Methods("GET")
	admin.HandleFunc("/reservations/{id}", adminHandler.UpdateReservation).Methods("PUT")
	admin.HandleFunc("/reservations/{id}", adminHandler.DeleteReservation).Methods("DELETE")
	admin.HandleFunc("/reservations/{id}/status", adminHandler.UpdateReservationStatus).Methods("PUT")
	admin.HandleFunc("/reservations/{id}/payment-status", adminHandler.UpdateReservationPaymentStatus).Methods("PUT")
	admin.HandleFunc("/clients", adminHandler.ListClients).Methods("GET")
	admin.HandleFunc("/analytics", adminHandler.Analytics).Methods("GET")

	c := cron.New()
	c.AddFunc("@hourly", func() {
		if err := jobService.CompleteEndedReservations(); err != nil {
			log.Printf("Cron job failed to complete ended reservations: %v", err)
		}
	})
	c.AddFunc("@daily", func() {
		cutoff := time.Now().AddDate(0, 0, -7)
		n, err := jobService.DeleteOldPendingReservations(cutoff)
		if err != nil {
			log.Printf("Cron job failed to delete stale pending reservations: %v", err)
			return
		}
		if n > 0 {
			log.Printf("Deleted %d stale pending reservations", n)
		}
	})
	c.AddFunc("@every 10m", jobService.PurgeExpiredSessions)
	c.Start()
	defer c.Stop()

	allowedOrigin := os.Getenv("FRONTEND_BASE_URL")
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{allowedOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "Stripe-Signature"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
