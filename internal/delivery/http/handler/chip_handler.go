package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"electrotrack/internal/usecase/chip"
	"electrotrack/pkg/utils"
)

type ChipHandler struct {
	service *chip.Service
}

func NewChipHandler(service *chip.Service) *ChipHandler {
	return &ChipHandler{service: service}
}

func (h *ChipHandler) RegisterRoutes(router *gin.RouterGroup) {
	chips := router.Group("/chips")
	{
		chips.GET("", h.ListChips)
		chips.GET("/available", h.ListAvailable)
		chips.GET("/:id", h.GetChip)
	}
}

func (h *ChipHandler) RegisterWriteRoutes(router *gin.RouterGroup) {
	chips := router.Group("/chips")
	{
		chips.POST("", h.CreateChip)
		chips.PUT("/:id", h.UpdateChip)
		chips.DELETE("/:id", h.RetireChip)
	}
}

func (h *ChipHandler) CreateChip(c *gin.Context) {
	var req chip.CreateChipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.CreateChip(c.Request.Context(), &req, actor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Satellite chip created successfully", resp)
}

func (h *ChipHandler) GetChip(c *gin.Context) {
	chipID, ok := parseID(c, "id", "chip")
	if !ok {
		return
	}

	resp, err := h.service.GetChip(c.Request.Context(), chipID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Satellite chip retrieved successfully", resp)
}

func (h *ChipHandler) ListChips(c *gin.Context) {
	var filter chip.FilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.ListChips(c.Request.Context(), &filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Satellite chips retrieved successfully", resp)
}

func (h *ChipHandler) ListAvailable(c *gin.Context) {
	resp, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Available satellite chips retrieved successfully", resp)
}

func (h *ChipHandler) UpdateChip(c *gin.Context) {
	chipID, ok := parseID(c, "id", "chip")
	if !ok {
		return
	}

	var req chip.UpdateChipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateChip(c.Request.Context(), chipID, &req, actor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Satellite chip updated successfully", resp)
}

func (h *ChipHandler) RetireChip(c *gin.Context) {
	chipID, ok := parseID(c, "id", "chip")
	if !ok {
		return
	}

	if err := h.service.RetireChip(c.Request.Context(), chipID, actor(c)); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Satellite chip retired successfully", nil)
}
