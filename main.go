package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/uxdsrini/studio-api/config"
	"github.com/uxdsrini/studio-api/controllers"
	"github.com/uxdsrini/studio-api/middleware"
	"github.com/uxdsrini/studio-api/models"
	"github.com/uxdsrini/studio-api/realtime"
	"github.com/uxdsrini/studio-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting UXD Srini Studio API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.Appointment{}, &models.AdminUser{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Connect to Redis (chat list + token blacklist)
	if err := config.ConnectRedis(cfg.RedisURL); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	chatStore := services.InitChatStore(config.GetRedis())
	services.InitTokenBlacklist(config.GetRedis())

	// Content and media services
	services.InitContentService()
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
	} else {
		log.Println("AWS_S3_BUCKET not set, case-study image uploads disabled")
	}

	// Websocket hub and the chat snapshot feed
	hub := realtime.InitHub()
	go hub.Heartbeat(30 * time.Second)
	go func() {
		if err := realtime.NewChatFeed(chatStore, hub).Run(context.Background()); err != nil && err != context.Canceled {
			log.Printf("Chat feed stopped: %v", err)
		}
	}()

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires all routes. Precedence is explicit in the route table:
// the chat socket, then authenticated admin routes, then case-study lookups,
// then the marketing home content.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	// Chat websocket
	router.GET("/ws/chat", realtime.HandleChat)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Public site content
		v1.GET("/content/site", controllers.GetSiteContent)
		v1.GET("/case-studies", controllers.ListCaseStudies)
		v1.GET("/case-studies/:id", controllers.GetCaseStudy)

		// Public booking
		v1.POST("/appointments", controllers.CreateAppointment)
		v1.GET("/appointments/options", controllers.GetBookingOptions)

		// Auth
		v1.POST("/auth/login", controllers.Login)

		// Admin routes, gated by the session token
		admin := v1.Group("/admin")
		admin.Use(middleware.EnsureValidToken(cfg))
		{
			admin.GET("/appointments", controllers.ListAppointments)
			admin.PATCH("/appointments/:id/status", controllers.UpdateAppointmentStatus)
			admin.DELETE("/appointments/:id", controllers.DeleteAppointment)
			admin.POST("/case-studies/:id/image", controllers.UploadCaseStudyImage)
		}

		// The watch socket validates its token from the query string itself
		v1.GET("/admin/appointments/watch", realtime.HandleAppointmentsWatch)

		authenticated := v1.Group("/auth")
		authenticated.Use(middleware.EnsureValidToken(cfg))
		{
			authenticated.POST("/logout", controllers.Logout)
			authenticated.GET("/session", controllers.GetSession)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "UXD Srini Studio API is running",
	})
}
