package audit

import (
	"time"

	"github.com/google/uuid"

	domainAudit "electrotrack/internal/domain/audit"
)

type FilterRequest struct {
	Entity   string `form:"entity" validate:"omitempty,oneof=loan equipment chip employee user"`
	EntityID string `form:"entityId" validate:"omitempty,uuid"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type EntryResponse struct {
	ID        uuid.UUID              `json:"id"`
	Entity    string                 `json:"entity"`
	EntityID  uuid.UUID              `json:"entityId"`
	Action    string                 `json:"action"`
	Actor     string                 `json:"actor"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt time.Time              `json:"createdAt"`
}

type ListResponse struct {
	Entries    []EntryResponse `json:"entries"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

func ToEntryResponse(e *domainAudit.Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Action:    e.Action,
		Actor:     e.Actor,
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
}
