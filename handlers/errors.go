package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbendary2019/Shoporia-sub001/services/catalog"
	"github.com/mbendary2019/Shoporia-sub001/services/scheduling"
	"github.com/mbendary2019/Shoporia-sub001/utils"
)

// respondSchedulingError maps the scheduler's error taxonomy onto HTTP.
// SlotUnavailable and InvalidTransition carry user-facing messages verbatim;
// everything unrecognized collapses to a 500.
func respondSchedulingError(c *gin.Context, err error) {
	var (
		validation *scheduling.ValidationError
		slotTaken  *scheduling.SlotUnavailableError
		transition *scheduling.InvalidTransitionError
		notFound   *scheduling.NotFoundError
		concurrent *scheduling.ConcurrentModificationError
		inUse      *catalog.ServiceInUseError
	)
	switch {
	case errors.As(err, &validation):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	case errors.As(err, &slotTaken):
		utils.JSONError(c, http.StatusConflict, "slot no longer available", err.Error())
	case errors.As(err, &transition):
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid status transition", err.Error())
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.As(err, &concurrent):
		utils.JSONError(c, http.StatusConflict, "booking was modified concurrently", err.Error())
	case errors.As(err, &inUse):
		utils.JSONError(c, http.StatusConflict, "service still in use", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
