package controllers

import (
	"net/http"

	"hotel-booking-engine/services"
	"hotel-booking-engine/utils"

	"github.com/gin-gonic/gin"
)

type CurrencyController struct {
	CurrencySvc *services.CurrencyService
}

func NewCurrencyController(svc *services.CurrencyService) *CurrencyController {
	return &CurrencyController{CurrencySvc: svc}
}

// GetRates GET /api/currency/rates
func (cc *CurrencyController) GetRates(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"base":      services.BaseCurrency,
		"rates":     cc.CurrencySvc.GetRates(),
		"fetchedAt": cc.CurrencySvc.FetchedAt(),
	})
}
