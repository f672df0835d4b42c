package routes

import (
	"time"

	"detailing/handlers"
	"detailing/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers authentication endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/loggedIn", middleware.Identify(), hb.LoggedInHandler)
	}
}

// RegisterCartRoutes registers the cart resource.
func RegisterCartRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cart")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.GetCart)
		api.POST("", hb.AddToCart)
		api.DELETE("", hb.RemoveFromCart)
		api.DELETE("/clear", hb.ClearCart)
		api.PUT("/datetime", hb.SelectDateTime)
	}
}

// RegisterBookingRoutes registers busy-time queries and bookings.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/busyTimes", hb.GetBusyTimes)
		api.POST("", hb.CreateBooking)
		api.GET("", hb.ListBookings)
	}
}

// RegisterServiceRoutes registers the services catalog.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.GetServices)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(), middleware.RequireAdmin())
		admin.POST("", hb.CreateService)
		admin.DELETE("/:id", hb.DeleteService)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	// Credentialed requests need explicit origins; "*" is rejected by browsers.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterCartRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterHealthRoute(r)

	uploads := r.Group("/api/uploads")
	uploads.Use(middleware.JWTAuthMiddleware(), middleware.RequireAdmin())
	RegisterUploadRoutes(uploads, hb)
}
