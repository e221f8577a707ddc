package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbendary2019/Shoporia-sub001/models"
	"github.com/mbendary2019/Shoporia-sub001/services/scheduling"
	"github.com/mbendary2019/Shoporia-sub001/utils"
)

// AvailabilityHandler serves slot discovery for the storefront's booking
// screen.
type AvailabilityHandler struct {
	Scheduler scheduling.Service
}

func NewAvailabilityHandler(scheduler scheduling.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Scheduler: scheduler}
}

// slotView is the wire shape of one bookable slot, wall-clock strings on the
// outside, minutes inside.
type slotView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func toSlotViews(slots []models.Interval) []slotView {
	views := make([]slotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, slotView{Start: s.Start.String(), End: s.End.String()})
	}
	return views
}

// ListSlots handles GET /api/services/:id/slots?date=YYYY-MM-DD.
func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	serviceID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "date query parameter is required")
		return
	}

	slots, err := h.Scheduler.AvailableSlots(c.Request.Context(), serviceID, date)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"serviceId": serviceID,
		"date":      date,
		"slots":     toSlotViews(slots),
	})
}

// CheckSlot handles GET /api/services/:id/slots/check?date=&start=&end=.
func (h *AvailabilityHandler) CheckSlot(c *gin.Context) {
	serviceID := c.Param("id")
	date := c.Query("date")

	start, err := models.ParseTimeOfDay(c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	end, err := models.ParseTimeOfDay(c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	available, err := h.Scheduler.CheckSlotAvailability(c.Request.Context(), serviceID, date,
		models.Interval{Start: start, End: end})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"serviceId": serviceID,
		"date":      date,
		"start":     start.String(),
		"end":       end.String(),
		"available": available,
	})
}
