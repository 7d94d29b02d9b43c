package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hotel-booking-engine/services"
	"hotel-booking-engine/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type GuestPayload struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone"`
}

type CreateBookingPayload struct {
	RoomID   uint                            `json:"room_id" binding:"required"`
	CheckIn  string                          `json:"check_in" binding:"required"`
	CheckOut string                          `json:"check_out" binding:"required"`
	Adults   int                             `json:"adults"`
	Children int                             `json:"children"`
	Services []services.SelectedServiceInput `json:"services"`
	Guest    GuestPayload                    `json:"guest" binding:"required"`
}

type UpdateStayPayload struct {
	RoomID   *uint                           `json:"room_id"`
	CheckIn  *string                         `json:"check_in"`
	CheckOut *string                         `json:"check_out"`
	Adults   *int                            `json:"adults"`
	Children *int                            `json:"children"`
	Services []services.SelectedServiceInput `json:"services"`
}

type StatusTransitionPayload struct {
	Status string `json:"status" binding:"required"`
}

type PaymentTransitionPayload struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
	PaymentMethod string `json:"payment_method"`
}

// parseDate accepts "2006-01-02" or RFC3339.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidId", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// CreateBooking POST /api/bookings
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	checkIn, err := parseDate(payload.CheckIn)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidDateRange", err.Error())
		return
	}
	checkOut, err := parseDate(payload.CheckOut)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidDateRange", err.Error())
		return
	}

	adults := payload.Adults
	if adults == 0 {
		adults = 1
	}

	booking, err := bc.BookingSvc.CreateBooking(services.CreateBookingRequest{
		RoomID:   payload.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Adults:   adults,
		Children: payload.Children,
		Services: payload.Services,
		Guest: services.GuestInfo{
			Name:  payload.Guest.Name,
			Email: payload.Guest.Email,
			Phone: payload.Guest.Phone,
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GetBookings GET /api/bookings
func (bc *BookingController) GetBookings(c *gin.Context) {
	list, err := bc.BookingSvc.ListBookings()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GetBookingDetails GET /api/bookings/:id
func (bc *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.GetBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// UpdateStay PUT /api/bookings/:id/stay
func (bc *BookingController) UpdateStay(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload UpdateStayPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	req := services.UpdateStayRequest{
		RoomID:   payload.RoomID,
		Adults:   payload.Adults,
		Children: payload.Children,
		Services: payload.Services,
	}
	if payload.CheckIn != nil {
		t, err := parseDate(*payload.CheckIn)
		if err != nil {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidDateRange", err.Error())
			return
		}
		req.CheckIn = &t
	}
	if payload.CheckOut != nil {
		t, err := parseDate(*payload.CheckOut)
		if err != nil {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidDateRange", err.Error())
			return
		}
		req.CheckOut = &t
	}

	booking, err := bc.BookingSvc.UpdateStay(id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// TransitionStatus PATCH /api/bookings/:id/status
func (bc *BookingController) TransitionStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload StatusTransitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	booking, err := bc.BookingSvc.TransitionStatus(id, payload.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// TransitionPayment PATCH /api/bookings/:id/payment
func (bc *BookingController) TransitionPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload PaymentTransitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	booking, err := bc.BookingSvc.TransitionPayment(id, payload.PaymentStatus, payload.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
