package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"randevu/handlers"
	"randevu/middleware"
	"randevu/utils"
)

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.RequireUser())
		api.POST("", hb.Booking.BookHandler)
		api.DELETE("/:id", hb.Booking.CancelHandler)
	}
}

// RegisterAppointmentRoutes registers lifecycle and read endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		// User-side endpoints.
		user := api.Group("")
		user.Use(middleware.RequireUser())
		user.PUT("/:id/confirm", hb.Appointment.ConfirmAsUserHandler)
		user.GET("/mine", hb.Appointment.ListMineHandler)

		// Business-side endpoints.
		shop := api.Group("")
		shop.Use(middleware.RequireShop())
		shop.PUT("/:id/accept", hb.Appointment.ConfirmAsBusinessHandler)
		shop.PUT("/:id/complete", hb.Appointment.MarkCompletedHandler)
		shop.DELETE("/:id", hb.Booking.CancelHandler)
		shop.GET("/day", hb.Appointment.ListShopDayHandler)
	}
}

// RegisterShopRoutes registers shop reads, availability, and schedule publishing.
func RegisterShopRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/shops")
	{
		// Public reads: shop detail, free times, calendar, reviews.
		api.GET("/:shopId", hb.Shop.GetShopHandler)
		api.GET("/:shopId/times", hb.Booking.GetAvailableTimesHandler)
		api.GET("/:shopId/calendar", hb.Booking.CalendarHandler)
		api.GET("/:shopId/reviews", hb.Review.ListShopReviewsHandler)

		// Publishing the rolling window requires a business identity.
		protected := api.Group("")
		protected.Use(middleware.RequireShop())
		protected.POST("/schedule", hb.Booking.PublishScheduleHandler)
	}
}

// RegisterReviewRoutes registers review writes.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.Use(middleware.RequireUser())
		api.POST("", hb.Review.SubmitReviewHandler)
		api.PUT("/:id", hb.Review.UpdateReviewHandler)
		api.DELETE("/:id", hb.Review.DeleteReviewHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.HeaderUserID, middleware.HeaderShopID},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterBookingRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterShopRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterHealthRoute(r)
}
