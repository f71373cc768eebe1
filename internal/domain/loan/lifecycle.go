package loan

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"electrotrack/internal/domain/equipment"
)

// NoMaintenance is the only requiresMaintenance answer that lets returned
// equipment go straight back to Available.
const NoMaintenance = "No"

// HoldsEquipment reports whether the item keeps its equipment Loaned.
func (i *Item) HoldsEquipment() bool {
	return !i.IsDeviceReturned
}

// HoldsChip reports whether the item keeps its chip Loaned.
func (i *Item) HoldsChip() bool {
	return i.ChipID != nil && !i.IsChipReturned
}

// FullyReturned is true once the device and, if present, the chip are back.
func (i *Item) FullyReturned() bool {
	return i.IsDeviceReturned && (i.ChipID == nil || i.IsChipReturned)
}

// ApplyReturn copies the return data onto the item and reports which assets
// came back with this call. An asset already returned stays returned, so
// repeating a return never triggers a second status change. Once the device
// is back its return data is frozen, since the equipment status was derived
// from it.
func (i *Item) ApplyReturn(r ItemReturn) (deviceReturned, chipReturned bool) {
	deviceReturned = r.IsDeviceReturned && !i.IsDeviceReturned
	chipReturned = r.IsChipReturned && i.ChipID != nil && !i.IsChipReturned

	if i.IsDeviceReturned {
		i.IsChipReturned = i.IsChipReturned || chipReturned
		return deviceReturned, chipReturned
	}

	i.ReturnCondition = r.ReturnCondition
	i.ReturnAccessories = r.ReturnAccessories
	if i.ReturnAccessories == nil {
		i.ReturnAccessories = []string{}
	}
	i.ReturnObservations = r.ReturnObservations
	i.RequiresMaintenance = r.RequiresMaintenance
	i.IsDeviceReturned = i.IsDeviceReturned || r.IsDeviceReturned
	i.IsChipReturned = i.IsChipReturned || (r.IsChipReturned && i.ChipID != nil)

	return deviceReturned, chipReturned
}

// AllReturned reports whether every item of a loan has been fully returned.
func AllReturned(items []Item) bool {
	for idx := range items {
		if !items[idx].FullyReturned() {
			return false
		}
	}
	return true
}

// AnyReturned reports whether at least one device or chip came back.
func AnyReturned(items []Item) bool {
	for idx := range items {
		if items[idx].IsDeviceReturned || items[idx].IsChipReturned {
			return true
		}
	}
	return false
}

// ReturnedEquipmentStatus decides where a returned device goes. Damaged
// equipment always goes to Maintenance; anything else does too unless the
// return explicitly states that no maintenance is required.
func ReturnedEquipmentStatus(condition *equipment.Condition, requiresMaintenance *string) equipment.Status {
	if condition != nil && *condition == equipment.ConditionDamaged {
		return equipment.StatusMaintenance
	}
	if requiresMaintenance == nil || *requiresMaintenance != NoMaintenance {
		return equipment.StatusMaintenance
	}
	return equipment.StatusAvailable
}

// Merge overlays the non-empty signatures of other.
func (s Signatures) Merge(other *Signatures) Signatures {
	if other == nil {
		return s
	}
	if other.Requester != "" {
		s.Requester = other.Requester
	}
	if other.Deliverer != "" {
		s.Deliverer = other.Deliverer
	}
	if other.ReturnRequester != "" {
		s.ReturnRequester = other.ReturnRequester
	}
	if other.ReturnReceiver != "" {
		s.ReturnReceiver = other.ReturnReceiver
	}
	return s
}

// IsPartiallyReturned is true for active loans with some assets already back.
func (l *Loan) IsPartiallyReturned() bool {
	return l.Status == StatusActive && AnyReturned(l.Items)
}

// IsOverdue reports whether an active loan is past its planned return date.
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.Status == StatusActive &&
		l.Mission.PlannedReturnDate != nil &&
		l.Mission.PlannedReturnDate.Before(now)
}

// FindItemByEquipment returns the index of the item holding equipmentID, or -1.
func FindItemByEquipment(items []Item, equipmentID uuid.UUID) int {
	for idx := range items {
		if items[idx].EquipmentID == equipmentID {
			return idx
		}
	}
	return -1
}

// NewOrderID renders a human readable order number such as PR-20240131-3F9A1C.
func NewOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("PR-%s-%s", now.UTC().Format("20060102"), suffix)
}
