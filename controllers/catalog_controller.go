package controllers

import (
	"net/http"

	"hotel-booking-engine/models"
	"hotel-booking-engine/services"
	"hotel-booking-engine/utils"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogSvc *services.CatalogService
}

func NewCatalogController(svc *services.CatalogService) *CatalogController {
	return &CatalogController{CatalogSvc: svc}
}

// GetRooms GET /api/rooms
func (cc *CatalogController) GetRooms(c *gin.Context) {
	rooms, err := cc.CatalogSvc.ListRooms()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetRoomByID GET /api/rooms/:id
func (cc *CatalogController) GetRoomByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := cc.CatalogSvc.GetRoom(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// CreateRoom POST /api/rooms
func (cc *CatalogController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if err := cc.CatalogSvc.CreateRoom(&room); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// GetServices GET /api/services
func (cc *CatalogController) GetServices(c *gin.Context) {
	defs, err := cc.CatalogSvc.ListServices()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, defs)
}

type CreateServicePayload struct {
	Name        string `json:"name" binding:"required"`
	PriceCents  int64  `json:"priceCents"`
	PricingMode string `json:"pricingMode" binding:"required"`
}

// CreateService POST /api/services
func (cc *CatalogController) CreateService(c *gin.Context) {
	var payload CreateServicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	def, err := cc.CatalogSvc.CreateService(payload.Name, payload.PriceCents, payload.PricingMode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, def)
}
