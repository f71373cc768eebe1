package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"electrotrack/internal/usecase/loan"
	"electrotrack/pkg/utils"
)

type LoanHandler struct {
	service *loan.Service
}

func NewLoanHandler(service *loan.Service) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) RegisterRoutes(router *gin.RouterGroup) {
	loans := router.Group("/loans")
	{
		loans.GET("", h.ListLoans)
		loans.GET("/:id", h.GetLoan)
	}
	router.GET("/equipment/:id/loans", h.ListEquipmentHistory)
}

func (h *LoanHandler) RegisterWriteRoutes(router *gin.RouterGroup) {
	loans := router.Group("/loans")
	{
		loans.POST("", h.CreateLoan)
		loans.PUT("/:id", h.UpdateLoan)
		loans.PUT("/:id/return", h.ReturnLoan)
		loans.POST("/:id/cancel", h.CancelLoan)
	}
}

func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req loan.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.CreateLoan(c.Request.Context(), &req, actor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Loan created successfully", resp)
}

func (h *LoanHandler) UpdateLoan(c *gin.Context) {
	loanID, ok := parseID(c, "id", "loan")
	if !ok {
		return
	}

	var req loan.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateLoan(c.Request.Context(), loanID, &req, actor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Loan updated successfully", resp)
}

func (h *LoanHandler) ReturnLoan(c *gin.Context) {
	loanID, ok := parseID(c, "id", "loan")
	if !ok {
		return
	}

	var req loan.ReturnLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.ReturnLoan(c.Request.Context(), loanID, &req, actor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Loan return processed", resp)
}

func (h *LoanHandler) CancelLoan(c *gin.Context) {
	loanID, ok := parseID(c, "id", "loan")
	if !ok {
		return
	}

	resp, err := h.service.CancelLoan(c.Request.Context(), loanID, actor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Loan cancelled successfully", resp)
}

func (h *LoanHandler) GetLoan(c *gin.Context) {
	loanID, ok := parseID(c, "id", "loan")
	if !ok {
		return
	}

	resp, err := h.service.GetLoan(c.Request.Context(), loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Loan retrieved successfully", resp)
}

func (h *LoanHandler) ListLoans(c *gin.Context) {
	var filter loan.LoanFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.ListLoans(c.Request.Context(), &filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Loans retrieved successfully", resp)
}

func (h *LoanHandler) ListEquipmentHistory(c *gin.Context) {
	equipmentID, ok := parseID(c, "id", "equipment")
	if !ok {
		return
	}

	resp, err := h.service.ListEquipmentHistory(c.Request.Context(), equipmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Loan history retrieved successfully", resp)
}
