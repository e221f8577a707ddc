package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mbendary2019/Shoporia-sub001/models"
	"github.com/mbendary2019/Shoporia-sub001/services/scheduling"
	"github.com/mbendary2019/Shoporia-sub001/utils"
)

// BookingHandler serves booking creation, lifecycle transitions and the
// dashboard's booking reads.
type BookingHandler struct {
	Scheduler scheduling.Service
}

func NewBookingHandler(scheduler scheduling.Service) *BookingHandler {
	return &BookingHandler{Scheduler: scheduler}
}

type createBookingInput struct {
	ServiceID     string `json:"serviceId" binding:"required"`
	CustomerID    string `json:"customerId" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Start         string `json:"start" binding:"required"`
	End           string `json:"end" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	PaymentToken  string `json:"paymentToken"`
}

// Create handles POST /api/bookings. A replayed Idempotency-Key header
// returns the originally created booking instead of placing a duplicate.
func (h *BookingHandler) Create(c *gin.Context) {
	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	start, err := models.ParseTimeOfDay(input.Start)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	end, err := models.ParseTimeOfDay(input.End)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req := scheduling.CreateBookingRequest{
		ServiceID:      input.ServiceID,
		CustomerID:     input.CustomerID,
		Date:           input.Date,
		Start:          start,
		End:            end,
		PaymentMethod:  input.PaymentMethod,
		PaymentToken:   input.PaymentToken,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	}

	booking, err := h.Scheduler.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetByID handles GET /api/bookings/:id.
func (h *BookingHandler) GetByID(c *gin.Context) {
	booking, err := h.Scheduler.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetByNumber handles GET /api/bookings/number/:number.
func (h *BookingHandler) GetByNumber(c *gin.Context) {
	booking, err := h.Scheduler.GetBookingByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type transitionInput struct {
	Status         string `json:"status" binding:"required"`
	ExpectedStatus string `json:"expectedStatus" binding:"required"`
}

// UpdateStatus handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var input transitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Scheduler.TransitionStatus(c.Request.Context(), c.Param("id"),
		models.BookingStatus(input.ExpectedStatus), models.BookingStatus(input.Status))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ByCustomer handles GET /api/customers/:id/bookings?cursor=&limit=.
func (h *BookingHandler) ByCustomer(c *gin.Context) {
	page, err := h.Scheduler.CustomerBookings(c.Request.Context(),
		c.Param("id"), c.Query("cursor"), parseLimit(c))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ByStore handles GET /api/stores/:id/bookings?cursor=&limit=.
func (h *BookingHandler) ByStore(c *gin.Context) {
	page, err := h.Scheduler.StoreBookings(c.Request.Context(),
		c.Param("id"), c.Query("cursor"), parseLimit(c))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// StoreStats handles GET /api/stores/:id/booking-stats.
func (h *BookingHandler) StoreStats(c *gin.Context) {
	stats, err := h.Scheduler.StoreStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		return 20
	}
	return limit
}
