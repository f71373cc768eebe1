package chip

import (
	"time"

	"github.com/google/uuid"

	domainChip "electrotrack/internal/domain/chip"
)

type CreateChipRequest struct {
	ICCID       string  `json:"iccid" validate:"required,min=10,max=25,numeric"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=30"`
	Carrier     *string `json:"carrier" validate:"omitempty,max=100"`
	Plan        *string `json:"plan" validate:"omitempty,max=100"`
	Status      *string `json:"status" validate:"omitempty,chip_status"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateChipRequest struct {
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=30"`
	Carrier     *string `json:"carrier" validate:"omitempty,max=100"`
	Plan        *string `json:"plan" validate:"omitempty,max=100"`
	Status      *string `json:"status" validate:"omitempty,chip_status"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

type FilterRequest struct {
	Status   string `form:"status" validate:"omitempty,chip_status"`
	Carrier  string `form:"carrier" validate:"max=100"`
	Search   string `form:"search" validate:"max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type ChipResponse struct {
	ID            uuid.UUID         `json:"id"`
	ICCID         string            `json:"iccid"`
	PhoneNumber   *string           `json:"phoneNumber"`
	Carrier       *string           `json:"carrier"`
	Plan          *string           `json:"plan"`
	Status        domainChip.Status `json:"status"`
	StatusDisplay string            `json:"statusDisplay"`
	Notes         *string           `json:"notes"`
	IsAvailable   bool              `json:"isAvailable"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type ListResponse struct {
	Chips      []ChipResponse `json:"chips"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

func ToChipResponse(c *domainChip.Chip) *ChipResponse {
	if c == nil {
		return nil
	}
	return &ChipResponse{
		ID:            c.ID,
		ICCID:         c.ICCID,
		PhoneNumber:   c.PhoneNumber,
		Carrier:       c.Carrier,
		Plan:          c.Plan,
		Status:        c.Status,
		StatusDisplay: c.Status.DisplayName(),
		Notes:         c.Notes,
		IsAvailable:   c.IsAvailable(),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func ToDomainFilter(req *FilterRequest) *domainChip.Filter {
	f := &domainChip.Filter{
		Carrier:  req.Carrier,
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != "" {
		status := domainChip.Status(req.Status)
		f.Status = &status
	}
	return f
}
