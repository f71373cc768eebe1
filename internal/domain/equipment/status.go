package equipment

import "fmt"

var manualTransitions = map[Status][]Status{
	StatusAvailable:   {StatusMaintenance, StatusRetired, StatusDamaged},
	StatusMaintenance: {StatusAvailable, StatusRetired, StatusDamaged},
	StatusDamaged:     {StatusMaintenance, StatusRetired},
	StatusRetired:     {},
	StatusLoaned:      {},
}

// ValidateManualTransition checks a status change requested through the
// registry. Loaned is entered and left only by the loan lifecycle.
func ValidateManualTransition(current, next Status) error {
	if current == next {
		return nil
	}
	if current == StatusLoaned {
		return ErrEquipmentLoaned
	}

	allowed, exists := manualTransitions[current]
	if !exists {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, current)
	}
	for _, status := range allowed {
		if status == next {
			return nil
		}
	}

	return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStatusTransition, current, next)
}
