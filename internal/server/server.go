package server

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly/config"
	"github.com/gatherly/gatherly/internal/handlers"
	"github.com/gatherly/gatherly/internal/metrics"
	"github.com/gatherly/gatherly/internal/middleware"
	"github.com/gatherly/gatherly/internal/models"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	metrics.Register()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	setupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		publicEvents := public.Group("/public/events")
		{
			publicEvents.GET("", handlers.PublicListEvents)
			publicEvents.GET("/featured", handlers.FeaturedEvents)
			publicEvents.GET("/:id", handlers.PublicGetEvent)
			publicEvents.GET("/:id/feedback", handlers.ListFeedback)
		}

		categoryPublic := public.Group("/categories")
		{
			categoryPublic.GET("", handlers.ListCategories)
			categoryPublic.GET("/:id", handlers.GetCategory)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.POST("/logout", handlers.Logout)
		protected.GET("/me", handlers.GetProfile)
		protected.PUT("/me", handlers.UpdateProfile)
		protected.DELETE("/me", handlers.DeleteAccount)

		eventProtected := protected.Group("/events")
		{
			eventProtected.GET("", handlers.ListEvents)
			eventProtected.GET("/:id", handlers.GetEvent)
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.PUT("/:id", handlers.UpdateEvent)
			eventProtected.DELETE("/:id", handlers.DeleteEvent)

			eventProtected.POST("/:id/attendees", handlers.RegisterForEvent)
			eventProtected.GET("/:id/attendees", handlers.ListAttendees)
			eventProtected.DELETE("/:id/attendees/:attendeeId", handlers.CancelRegistration)
			eventProtected.POST("/:id/attendees/:attendeeId/checkin", handlers.CheckInAttendee)
			eventProtected.GET("/:id/attendees/:attendeeId/qr", handlers.GetCheckInQR)
			eventProtected.POST("/:id/checkin", handlers.SelfCheckIn)

			eventProtected.GET("/:id/analytics", handlers.GetEventAnalytics)
			eventProtected.POST("/:id/communications", handlers.CreateCommunication)
			eventProtected.GET("/:id/communications", handlers.ListCommunications)
			eventProtected.POST("/:id/feedback", handlers.CreateFeedback)
			eventProtected.GET("/:id/feedback", handlers.ListFeedback)
		}

		adminCategories := protected.Group("/categories")
		adminCategories.Use(middleware.RequireRole(models.RoleAdmin))
		{
			adminCategories.POST("", handlers.CreateCategory)
			adminCategories.PUT("/:id", handlers.UpdateCategory)
			adminCategories.DELETE("/:id", handlers.DeleteCategory)
		}
	}
}
