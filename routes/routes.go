package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbendary2019/Shoporia-sub001/handlers"
	"github.com/mbendary2019/Shoporia-sub001/middleware"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Shoporia scheduler is up"})
	})
}

// RegisterAvailabilityRoutes sets up public slot discovery for the storefront.
func RegisterAvailabilityRoutes(r *gin.Engine, h *handlers.AvailabilityHandler) {
	api := r.Group("/api/services")
	{
		api.GET("/:id/slots", h.ListSlots)
		api.GET("/:id/slots/check", h.CheckSlot)
	}
}

// RegisterBookingRoutes sets up the booking engine endpoints.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/bookings", h.Create)
		api.GET("/bookings/:id", h.GetByID)
		api.GET("/bookings/number/:number", h.GetByNumber)
		api.PATCH("/bookings/:id/status", h.UpdateStatus)
		api.GET("/customers/:id/bookings", h.ByCustomer)
		api.GET("/stores/:id/bookings", h.ByStore)
		api.GET("/stores/:id/booking-stats", h.StoreStats)
	}
}

// RegisterCatalogRoutes sets up the seller dashboard's service management.
func RegisterCatalogRoutes(r *gin.Engine, h *handlers.ServiceHandler) {
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/services", h.Create)
		api.GET("/services/:id", h.Get)
		api.GET("/stores/:id/services", h.ListByStore)
		api.PUT("/services/:id/availability", h.ReplaceAvailability)
		api.PATCH("/services/:id", h.UpdateSlotParams)
		api.DELETE("/services/:id", h.Archive)
	}
}
