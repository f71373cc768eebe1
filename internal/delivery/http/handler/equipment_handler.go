package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"electrotrack/internal/usecase/equipment"
	"electrotrack/pkg/utils"
)

type EquipmentHandler struct {
	service *equipment.Service
}

func NewEquipmentHandler(service *equipment.Service) *EquipmentHandler {
	return &EquipmentHandler{service: service}
}

func (h *EquipmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/equipment")
	{
		items.GET("", h.ListEquipment)
		items.GET("/available", h.ListAvailable)
		items.GET("/:id", h.GetEquipment)
	}
}

func (h *EquipmentHandler) RegisterWriteRoutes(router *gin.RouterGroup) {
	items := router.Group("/equipment")
	{
		items.POST("", h.CreateEquipment)
		items.PUT("/:id", h.UpdateEquipment)
		items.DELETE("/:id", h.RetireEquipment)
	}
}

func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	var req equipment.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.CreateEquipment(c.Request.Context(), &req, actor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Equipment created successfully", resp)
}

func (h *EquipmentHandler) GetEquipment(c *gin.Context) {
	equipmentID, ok := parseID(c, "id", "equipment")
	if !ok {
		return
	}

	resp, err := h.service.GetEquipment(c.Request.Context(), equipmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment retrieved successfully", resp)
}

func (h *EquipmentHandler) ListEquipment(c *gin.Context) {
	var filter equipment.FilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.ListEquipment(c.Request.Context(), &filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment retrieved successfully", resp)
}

func (h *EquipmentHandler) ListAvailable(c *gin.Context) {
	resp, err := h.service.ListAvailable(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Available equipment retrieved successfully", resp)
}

func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	equipmentID, ok := parseID(c, "id", "equipment")
	if !ok {
		return
	}

	var req equipment.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateEquipment(c.Request.Context(), equipmentID, &req, actor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment updated successfully", resp)
}

func (h *EquipmentHandler) RetireEquipment(c *gin.Context) {
	equipmentID, ok := parseID(c, "id", "equipment")
	if !ok {
		return
	}

	if err := h.service.RetireEquipment(c.Request.Context(), equipmentID, actor(c)); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment retired successfully", nil)
}
