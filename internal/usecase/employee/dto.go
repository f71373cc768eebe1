package employee

import (
	"time"

	"github.com/google/uuid"

	domainEmployee "electrotrack/internal/domain/employee"
)

type CreateEmployeeRequest struct {
	FullName   string  `json:"fullName" validate:"required,min=2,max=200"`
	NationalID string  `json:"nationalId" validate:"required,min=5,max=20"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Email      *string `json:"email" validate:"omitempty,email,max=255"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
}

type UpdateEmployeeRequest struct {
	FullName   *string `json:"fullName" validate:"omitempty,min=2,max=200"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Email      *string `json:"email" validate:"omitempty,email,max=255"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
	IsActive   *bool   `json:"isActive"`
}

type FilterRequest struct {
	Search     string `form:"search" validate:"max=100"`
	Department string `form:"department" validate:"max=100"`
	Active     *bool  `form:"active"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	PageSize   int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type EmployeeResponse struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"fullName"`
	NationalID string    `json:"nationalId"`
	Position   *string   `json:"position"`
	Department *string   `json:"department"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ListResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

func ToEmployeeResponse(e *domainEmployee.Employee) *EmployeeResponse {
	if e == nil {
		return nil
	}
	return &EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		NationalID: e.NationalID,
		Position:   e.Position,
		Department: e.Department,
		Email:      e.Email,
		Phone:      e.Phone,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
