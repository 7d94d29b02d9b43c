package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-engine/services"
	"hotel-booking-engine/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	AvailabilitySvc *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{AvailabilitySvc: svc}
}

// GetRoomAvailability GET /api/rooms/:id/availability?check_in=...&check_out=...[&exclude_booking=...]
// Returns whether the room is free plus the conflicting bookings, so the
// admin dashboard can show what is in the way.
func (ac *AvailabilityController) GetRoomAvailability(c *gin.Context) {
	roomID, ok := parseIDParam(c)
	if !ok {
		return
	}

	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidDateRange", err.Error())
		return
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidDateRange", err.Error())
		return
	}
	if !checkOut.After(checkIn) {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidDateRange", "check_out must be after check_in")
		return
	}

	var excludeID uint
	if raw := c.Query("exclude_booking"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidId", "exclude_booking must be a positive integer")
			return
		}
		excludeID = uint(id)
	}

	conflicts, err := ac.AvailabilitySvc.FindConflicts(roomID, checkIn, checkOut, excludeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"available": len(conflicts) == 0,
		"conflicts": conflicts,
	})
}
