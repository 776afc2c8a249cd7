package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"roktodan/internal/backend"
	"roktodan/internal/config"
	"roktodan/internal/handlers"
	"roktodan/internal/listing"
	"roktodan/internal/middleware"
	"roktodan/internal/payment"
	"roktodan/internal/session"
	"roktodan/internal/ws"
)

// listingTTL is how long the find-donor cache stays fresh before the next
// page load refetches.
const listingTTL = time.Minute

// sessionIdleTTL is how long an untouched browser session survives.
const sessionIdleTTL = 24 * time.Hour

func main() {
	log.Println("Starting RoktoDan server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	// Shared client for public reads and donation writes. Per-session
	// clients are created by the session manager so that table calls run
	// under the caller's row-level security.
	service, err := backend.New(backend.Config{
		URL:       cfg.SupabaseURL,
		AnonKey:   cfg.ServiceKey(),
		JWTSecret: cfg.SupabaseJWTSecret,
	})
	if err != nil {
		log.Fatal("cannot create backend client:", err)
	}
	log.Println("Connected to Supabase project", cfg.SupabaseURL)

	manager := session.NewManager(func() (session.Backend, error) {
		return backend.New(backend.Config{
			URL:       cfg.SupabaseURL,
			AnonKey:   cfg.SupabaseAnonKey,
			JWTSecret: cfg.SupabaseJWTSecret,
		})
	}, sessionIdleTTL)
	defer manager.Stop()

	hub := ws.NewHub()
	go hub.Run()

	var gateway *payment.Midtrans
	if cfg.PaymentFlow == payment.FlowRedirect {
		gateway = payment.NewMidtrans(cfg.MidtransServerKey, cfg.MidtransProduction)
	}

	listings := listing.NewService(service, listingTTL)

	authHandler := handlers.NewAuthHandler()
	profileHandler := handlers.NewProfileHandler()
	donorHandler := handlers.NewDonorHandler(listings)
	requestHandler := handlers.NewRequestHandler()
	donationHandler := handlers.NewDonationHandler(service, gateway, hub, cfg.PaymentFlow)
	dashboardHandler := handlers.NewDashboardHandler()
	contactHandler := handlers.NewContactHandler()
	wsHandler := handlers.NewWebSocketHandler(hub)

	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.Use(middleware.Session(manager))

	// Public pages
	r.GET("/find-donor", donorHandler.Find)
	r.GET("/donation-history", donationHandler.Recent)
	r.POST("/contact", contactHandler.Submit)
	r.GET("/donate-money/methods", donationHandler.Methods)
	r.POST("/donate-money/manual", donationHandler.RecordManual)
	r.GET("/donation/success", donationHandler.Outcome("success"))
	r.GET("/donation/fail", donationHandler.Outcome("fail"))
	r.GET("/donation/cancel", donationHandler.Outcome("cancel"))
	r.GET("/ws/donations", wsHandler.ServeWs)

	// Auth
	r.POST("/signup", authHandler.SignUp)
	r.POST("/signin", authHandler.SignIn)
	r.POST("/signout", authHandler.SignOut)
	r.POST("/verify-otp", authHandler.VerifyOtp)
	r.POST("/resend-otp", authHandler.ResendOtp)
	r.GET("/auth/callback", authHandler.Callback)

	// Payment gateway surface
	api := r.Group("/api")
	{
		api.POST("/pay", donationHandler.Initiate)
		api.POST("/webhook/payment", donationHandler.Webhook)
	}

	// Authenticated-only pages
	protected := r.Group("/")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/donation-request", requestHandler.Create)
		protected.POST("/become-donor", donorHandler.Create)
		protected.GET("/dashboard", dashboardHandler.Show)
		protected.GET("/api/me", profileHandler.Me)
		protected.PUT("/api/me", profileHandler.Update)
	}

	log.Println("Server starting on http://localhost:" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("could not start server:", err)
	}
}
