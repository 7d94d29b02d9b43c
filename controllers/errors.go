package controllers

import (
	"errors"
	"net/http"

	"hotel-booking-engine/services"
	"hotel-booking-engine/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP. Validation
// failures are 400, missing entities 404, availability/stale-version races
// 409 (retryable), guard violations 422. The message carries the current
// state and the precondition that failed.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.notFound", err.Error())
	case errors.Is(err, services.ErrInvalidDateRange):
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidDateRange", err.Error())
	case errors.Is(err, services.ErrInvalidQuantity):
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidQuantity", err.Error())
	case errors.Is(err, services.ErrCapacityExceeded):
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.capacityExceeded", err.Error())
	case errors.Is(err, services.ErrMissingPaymentMethod):
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.missingPaymentMethod", err.Error())
	case errors.Is(err, services.ErrRoomUnavailable):
		utils.JSONErrorCode(c, http.StatusConflict, "error.roomUnavailable", err.Error())
	case errors.Is(err, services.ErrStaleVersion):
		utils.JSONErrorCode(c, http.StatusConflict, "conflict.stale", err.Error())
	case errors.Is(err, services.ErrBookingNotPending):
		utils.JSONErrorCode(c, http.StatusUnprocessableEntity, "error.bookingNotPending", err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.JSONErrorCode(c, http.StatusUnprocessableEntity, "error.invalidTransition", err.Error())
	case errors.Is(err, services.ErrPaymentRequired):
		utils.JSONErrorCode(c, http.StatusUnprocessableEntity, "error.paymentRequired", err.Error())
	case errors.Is(err, services.ErrInvalidRefundState):
		utils.JSONErrorCode(c, http.StatusUnprocessableEntity, "error.invalidRefundState", err.Error())
	default:
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.internal", "internal server error")
	}
}
