package routes

import (
	"net/http"
	"time"

	"github.com/EAniwa/legacylancers-sub004/handlers"
	"github.com/EAniwa/legacylancers-sub004/middleware"
	"github.com/EAniwa/legacylancers-sub004/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router needs.
type HandlerBundle struct {
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
	Scheduling   *handlers.SchedulingHandler
}

// RegisterAvailabilityRoutes registers provider availability management endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/availabilities")
	{
		// Reads are public; mutations require a caller identity.
		api.GET("/:id", hb.Availability.GetAvailability)

		protected := api.Group("")
		protected.Use(middleware.RequireIdentity())
		protected.POST("", hb.Availability.CreateAvailability)
		protected.PATCH("/:id", hb.Availability.UpdateAvailability)
	}
}

// RegisterBookingRoutes registers the single-party booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("/check", hb.Booking.CheckSlot)

		protected := api.Group("")
		protected.Use(middleware.RequireIdentity())
		protected.POST("", hb.Booking.CreateBooking)
		protected.GET("/:id", hb.Booking.GetBooking)
		protected.POST("/:id/confirm", hb.Booking.ConfirmBooking)
		protected.POST("/:id/cancel", hb.Booking.CancelBooking)
		protected.PATCH("/:id", hb.Booking.UpdateBooking)
	}
}

// RegisterSchedulingRoutes registers the multi-party search endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/scheduling")
	{
		api.POST("/common-slots", hb.Scheduling.FindCommonSlots)
		api.GET("/common-slots/:searchId", hb.Scheduling.GetSearch)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterSchedulingRoutes(r, hb)
}
