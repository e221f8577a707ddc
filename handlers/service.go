package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogRepo "github.com/mbendary2019/Shoporia-sub001/database/repository/catalog"
	"github.com/mbendary2019/Shoporia-sub001/models"
	"github.com/mbendary2019/Shoporia-sub001/services/catalog"
	"github.com/mbendary2019/Shoporia-sub001/utils"
)

// ServiceHandler serves the seller dashboard's catalog operations.
type ServiceHandler struct {
	Catalog catalog.CatalogService
}

func NewServiceHandler(svc catalog.CatalogService) *ServiceHandler {
	return &ServiceHandler{Catalog: svc}
}

func respondCatalogError(c *gin.Context, err error) {
	var (
		notFound catalogRepo.ErrNotFound
		inUse    *catalog.ServiceInUseError
	)
	switch {
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "service not found", err.Error())
	case errors.As(err, &inUse):
		utils.JSONError(c, http.StatusConflict, "service still in use", err.Error())
	default:
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	}
}

// Create handles POST /api/services.
func (h *ServiceHandler) Create(c *gin.Context) {
	var service models.Service
	if err := c.ShouldBindJSON(&service); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Catalog.CreateService(c.Request.Context(), &service)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get handles GET /api/services/:id.
func (h *ServiceHandler) Get(c *gin.Context) {
	service, err := h.Catalog.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// ListByStore handles GET /api/stores/:id/services.
func (h *ServiceHandler) ListByStore(c *gin.Context) {
	services, err := h.Catalog.ListStoreServices(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ReplaceAvailability handles PUT /api/services/:id/availability.
func (h *ServiceHandler) ReplaceAvailability(c *gin.Context) {
	var weekly models.WeeklyAvailability
	if err := c.ShouldBindJSON(&weekly); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Catalog.ReplaceAvailability(c.Request.Context(), c.Param("id"), weekly); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

type slotParamsInput struct {
	Duration           int `json:"duration" binding:"required"`
	BufferTime         int `json:"bufferTime"`
	MaxBookingsPerSlot int `json:"maxBookingsPerSlot"`
}

// UpdateSlotParams handles PATCH /api/services/:id.
func (h *ServiceHandler) UpdateSlotParams(c *gin.Context) {
	var input slotParamsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.MaxBookingsPerSlot == 0 {
		input.MaxBookingsPerSlot = 1
	}

	if err := h.Catalog.UpdateSlotParams(c.Request.Context(), c.Param("id"),
		input.Duration, input.BufferTime, input.MaxBookingsPerSlot); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// Archive handles DELETE /api/services/:id (soft archive).
func (h *ServiceHandler) Archive(c *gin.Context) {
	if err := h.Catalog.ArchiveService(c.Request.Context(), c.Param("id")); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "archived"})
}
