package controllers

import (
	"net/http"

	"hotel-booking-engine/services"
	"hotel-booking-engine/utils"

	"github.com/gin-gonic/gin"
)

type PricingController struct {
	CatalogSvc  *services.CatalogService
	CurrencySvc *services.CurrencyService
}

func NewPricingController(catalog *services.CatalogService, currency *services.CurrencyService) *PricingController {
	return &PricingController{CatalogSvc: catalog, CurrencySvc: currency}
}

type PricePreviewPayload struct {
	RoomID   uint                            `json:"room_id" binding:"required"`
	CheckIn  string                          `json:"check_in" binding:"required"`
	CheckOut string                          `json:"check_out" binding:"required"`
	Adults   int                             `json:"adults"`
	Children int                             `json:"children"`
	Services []services.SelectedServiceInput `json:"services"`

	// Optional display currency. Unknown codes and stale rates degrade to
	// base currency; the preview never fails because of conversion.
	Currency string `json:"currency"`
}

// PreviewPrice POST /api/pricing/preview
// Computes the same breakdown the creation flow persists, without writing
// anything, so the UI can show live totals before committing.
func (pc *PricingController) PreviewPrice(c *gin.Context) {
	var payload PricePreviewPayload
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

	room, err := pc.CatalogSvc.GetRoom(payload.RoomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	adults := payload.Adults
	if adults == 0 {
		adults = 1
	}
	guests := adults + payload.Children

	resolved, err := pc.CatalogSvc.ResolveServices(payload.Services, guests)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	displayCurrency := ""
	displayRate := 0.0
	if payload.Currency != "" && payload.Currency != services.BaseCurrency {
		if rate, ok := pc.CurrencySvc.Rate(payload.Currency); ok {
			displayCurrency = payload.Currency
			displayRate = rate
		}
	}

	breakdown, err := services.ComputeTotal(room, checkIn, checkOut, resolved, displayCurrency, displayRate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, breakdown)
}
