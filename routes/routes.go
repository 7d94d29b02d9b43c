package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking-engine/controllers"
	"hotel-booking-engine/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	bc *controllers.BookingController,
	ac *controllers.AvailabilityController,
	pc *controllers.PricingController,
	cc *controllers.CatalogController,
	cur *controllers.CurrencyController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", cc.GetRooms)
			rooms.POST("", cc.CreateRoom)
			rooms.GET("/:id", cc.GetRoomByID)
			rooms.GET("/:id/availability", ac.GetRoomAvailability)
		}

		svcs := api.Group("/services")
		{
			svcs.GET("", cc.GetServices)
			svcs.POST("", cc.CreateService)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.PUT("/:id/stay", bc.UpdateStay)
			bookings.PATCH("/:id/status", bc.TransitionStatus)
			bookings.PATCH("/:id/payment", bc.TransitionPayment)
		}

		pricing := api.Group("/pricing")
		{
			pricing.POST("/preview", pc.PreviewPrice)
		}

		currency := api.Group("/currency")
		{
			currency.GET("/rates", cur.GetRates)
		}
	}

	return r
}
