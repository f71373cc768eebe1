package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"electrotrack/internal/usecase/employee"
	"electrotrack/pkg/utils"
)

type EmployeeHandler struct {
	service *employee.Service
}

func NewEmployeeHandler(service *employee.Service) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

func (h *EmployeeHandler) RegisterRoutes(router *gin.RouterGroup) {
	employees := router.Group("/employees")
	{
		employees.GET("", h.ListEmployees)
		employees.GET("/:id", h.GetEmployee)
	}
}

func (h *EmployeeHandler) RegisterWriteRoutes(router *gin.RouterGroup) {
	employees := router.Group("/employees")
	{
		employees.POST("", h.CreateEmployee)
		employees.PUT("/:id", h.UpdateEmployee)
		employees.DELETE("/:id", h.DeactivateEmployee)
	}
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req employee.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.CreateEmployee(c.Request.Context(), &req, actor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Employee created successfully", resp)
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	employeeID, ok := parseID(c, "id", "employee")
	if !ok {
		return
	}

	resp, err := h.service.GetEmployee(c.Request.Context(), employeeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Employee retrieved successfully", resp)
}

func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var filter employee.FilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.ListEmployees(c.Request.Context(), &filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Employees retrieved successfully", resp)
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	employeeID, ok := parseID(c, "id", "employee")
	if !ok {
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateEmployee(c.Request.Context(), employeeID, &req, actor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Employee updated successfully", resp)
}

func (h *EmployeeHandler) DeactivateEmployee(c *gin.Context) {
	employeeID, ok := parseID(c, "id", "employee")
	if !ok {
		return
	}

	if err := h.service.DeactivateEmployee(c.Request.Context(), employeeID, actor(c)); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Employee deactivated successfully", nil)
}
