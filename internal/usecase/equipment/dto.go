package equipment

import (
	"time"

	"github.com/google/uuid"

	domainEquipment "electrotrack/internal/domain/equipment"
	"electrotrack/pkg/utils"
)

type ScreenDTO struct {
	SizeInches *float64 `json:"sizeInches" validate:"omitempty,gt=0,lt=100"`
	Resolution *string  `json:"resolution" validate:"omitempty,max=50"`
	Condition  *string  `json:"condition" validate:"omitempty,asset_condition"`
	Notes      *string  `json:"notes" validate:"omitempty,max=500"`
}

type KeyboardDTO struct {
	Layout    *string `json:"layout" validate:"omitempty,max=50"`
	Condition *string `json:"condition" validate:"omitempty,asset_condition"`
	Notes     *string `json:"notes" validate:"omitempty,max=500"`
}

type BatteryDTO struct {
	HealthPercent *int    `json:"healthPercent" validate:"omitempty,min=0,max=100"`
	CycleCount    *int    `json:"cycleCount" validate:"omitempty,min=0"`
	Condition     *string `json:"condition" validate:"omitempty,asset_condition"`
	Notes         *string `json:"notes" validate:"omitempty,max=500"`
}

type PeripheralDTO struct {
	Name         string  `json:"name" validate:"required,max=100"`
	SerialNumber *string `json:"serialNumber" validate:"omitempty,max=100"`
	Condition    *string `json:"condition" validate:"omitempty,asset_condition"`
}

type CreateEquipmentRequest struct {
	SerialNumber  string          `json:"serialNumber" validate:"required,max=100"`
	InventoryCode *string         `json:"inventoryCode" validate:"omitempty,max=100"`
	Category      string          `json:"category" validate:"required,max=100"`
	SubCategory   *string         `json:"subCategory" validate:"omitempty,max=100"`
	Brand         *string         `json:"brand" validate:"omitempty,max=100"`
	Model         *string         `json:"model" validate:"omitempty,max=100"`
	Status        *string         `json:"status" validate:"omitempty,equipment_status"`
	Condition     string          `json:"condition" validate:"required,asset_condition"`
	Location      *string         `json:"location" validate:"omitempty,max=255"`
	Notes         *string         `json:"notes" validate:"omitempty,max=2000"`
	Screen        *ScreenDTO      `json:"screen"`
	Keyboard      *KeyboardDTO    `json:"keyboard"`
	Battery       *BatteryDTO     `json:"battery"`
	Peripherals   []PeripheralDTO `json:"peripherals" validate:"max=50,dive"`
}

// UpdateEquipmentRequest changes only what is present. A hardware block that
// is sent replaces the stored one; peripherals are replaced as a list.
type UpdateEquipmentRequest struct {
	SerialNumber  *string          `json:"serialNumber" validate:"omitempty,min=1,max=100"`
	InventoryCode *string          `json:"inventoryCode" validate:"omitempty,max=100"`
	Category      *string          `json:"category" validate:"omitempty,min=1,max=100"`
	SubCategory   *string          `json:"subCategory" validate:"omitempty,max=100"`
	Brand         *string          `json:"brand" validate:"omitempty,max=100"`
	Model         *string          `json:"model" validate:"omitempty,max=100"`
	Status        *string          `json:"status" validate:"omitempty,equipment_status"`
	Condition     *string          `json:"condition" validate:"omitempty,asset_condition"`
	Location      *string          `json:"location" validate:"omitempty,max=255"`
	Notes         *string          `json:"notes" validate:"omitempty,max=2000"`
	Screen        *ScreenDTO       `json:"screen"`
	Keyboard      *KeyboardDTO     `json:"keyboard"`
	Battery       *BatteryDTO      `json:"battery"`
	Peripherals   *[]PeripheralDTO `json:"peripherals" validate:"omitempty,max=50,dive"`
}

type FilterRequest struct {
	Status    string `form:"status" validate:"omitempty,equipment_status"`
	Category  string `form:"category" validate:"max=100"`
	Search    string `form:"search" validate:"max=100"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at updated_at serial_number category status"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type EquipmentResponse struct {
	ID            uuid.UUID              `json:"id"`
	SerialNumber  string                 `json:"serialNumber"`
	InventoryCode *string                `json:"inventoryCode"`
	Category      string                 `json:"category"`
	SubCategory   *string                `json:"subCategory"`
	Brand         *string                `json:"brand"`
	Model         *string                `json:"model"`
	Status        domainEquipment.Status `json:"status"`
	Condition     string                 `json:"condition"`
	Location      *string                `json:"location"`
	Notes         *string                `json:"notes"`
	Screen        *ScreenDTO             `json:"screen"`
	Keyboard      *KeyboardDTO           `json:"keyboard"`
	Battery       *BatteryDTO            `json:"battery"`
	Peripherals   []PeripheralDTO        `json:"peripherals"`
	IsAvailable   bool                   `json:"isAvailable"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

type ListResponse struct {
	Equipment  []EquipmentResponse `json:"equipment"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
}

func ToEquipmentResponse(e *domainEquipment.Equipment) *EquipmentResponse {
	if e == nil {
		return nil
	}
	resp := &EquipmentResponse{
		ID:            e.ID,
		SerialNumber:  e.SerialNumber,
		InventoryCode: e.InventoryCode,
		Category:      e.Category,
		SubCategory:   e.SubCategory,
		Brand:         e.Brand,
		Model:         e.Model,
		Status:        e.Status,
		Condition:     string(e.Condition),
		Location:      e.Location,
		Notes:         e.Notes,
		Peripherals:   make([]PeripheralDTO, len(e.Peripherals)),
		IsAvailable:   e.IsAvailable(),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.Screen != nil {
		resp.Screen = &ScreenDTO{
			SizeInches: e.Screen.SizeInches,
			Resolution: e.Screen.Resolution,
			Condition:  fromCondition(e.Screen.Condition),
			Notes:      e.Screen.Notes,
		}
	}
	if e.Keyboard != nil {
		resp.Keyboard = &KeyboardDTO{
			Layout:    e.Keyboard.Layout,
			Condition: fromCondition(e.Keyboard.Condition),
			Notes:     e.Keyboard.Notes,
		}
	}
	if e.Battery != nil {
		resp.Battery = &BatteryDTO{
			HealthPercent: e.Battery.HealthPercent,
			CycleCount:    e.Battery.CycleCount,
			Condition:     fromCondition(e.Battery.Condition),
			Notes:         e.Battery.Notes,
		}
	}
	for i, p := range e.Peripherals {
		resp.Peripherals[i] = PeripheralDTO{
			Name:         p.Name,
			SerialNumber: p.SerialNumber,
			Condition:    fromCondition(p.Condition),
		}
	}
	return resp
}

func ToDomainFilter(req *FilterRequest) *domainEquipment.Filter {
	f := &domainEquipment.Filter{
		Category:  req.Category,
		Search:    req.Search,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.Status != "" {
		status := domainEquipment.Status(req.Status)
		f.Status = &status
	}
	return f
}

func toScreen(s *ScreenDTO) *domainEquipment.Screen {
	if s == nil {
		return nil
	}
	return &domainEquipment.Screen{
		SizeInches: s.SizeInches,
		Resolution: utils.SanitizeOptional(s.Resolution),
		Condition:  toCondition(s.Condition),
		Notes:      utils.SanitizeOptional(s.Notes),
	}
}

func toKeyboard(k *KeyboardDTO) *domainEquipment.Keyboard {
	if k == nil {
		return nil
	}
	return &domainEquipment.Keyboard{
		Layout:    utils.SanitizeOptional(k.Layout),
		Condition: toCondition(k.Condition),
		Notes:     utils.SanitizeOptional(k.Notes),
	}
}

func toBattery(b *BatteryDTO) *domainEquipment.Battery {
	if b == nil {
		return nil
	}
	return &domainEquipment.Battery{
		HealthPercent: b.HealthPercent,
		CycleCount:    b.CycleCount,
		Condition:     toCondition(b.Condition),
		Notes:         utils.SanitizeOptional(b.Notes),
	}
}

func toPeripherals(items []PeripheralDTO) []domainEquipment.Peripheral {
	out := make([]domainEquipment.Peripheral, 0, len(items))
	for _, p := range items {
		out = append(out, domainEquipment.Peripheral{
			Name:         utils.SanitizeString(p.Name),
			SerialNumber: utils.SanitizeOptional(p.SerialNumber),
			Condition:    toCondition(p.Condition),
		})
	}
	return out
}

func toCondition(c *string) *domainEquipment.Condition {
	if c == nil {
		return nil
	}
	cond := domainEquipment.Condition(*c)
	return &cond
}

func fromCondition(c *domainEquipment.Condition) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}
