package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/danuarts/ridehail/config"
	"github.com/danuarts/ridehail/internal/handlers"
	"github.com/danuarts/ridehail/internal/middleware"
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

	r := gin.Default()

	setupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.WithField("port", port).Info("starting server")
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)
	}

	// Managed resources are admin-only, matching the authorization gate
	// the API has always had.
	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(), middleware.AdminRequired())
	{
		rides := protected.Group("/rides")
		{
			rides.GET("", handlers.ListRides)
			rides.POST("", handlers.CreateRide)
			rides.GET("/:id", handlers.GetRide)
			rides.PUT("/:id", handlers.UpdateRide)
			rides.DELETE("/:id", handlers.DeleteRide)
			rides.POST("/:id/events", handlers.AddRideEvent)
		}

		rideEvents := protected.Group("/ride-events")
		{
			rideEvents.GET("", handlers.ListRideEvents)
			rideEvents.GET("/:id", handlers.GetRideEvent)
			rideEvents.PUT("/:id", handlers.UpdateRideEvent)
			rideEvents.DELETE("/:id", handlers.DeleteRideEvent)
		}

		users := protected.Group("/users")
		{
			users.GET("", handlers.ListUsers)
			users.POST("", handlers.Register)
			users.GET("/riders", handlers.ListRiders)
			users.GET("/drivers", handlers.ListDrivers)
			users.GET("/:id", handlers.GetUser)
			users.PUT("/:id", handlers.UpdateUser)
			users.DELETE("/:id", handlers.DeleteUser)
		}
	}
}
