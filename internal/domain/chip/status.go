package chip

import "fmt"

var manualTransitions = map[Status][]Status{
	StatusAvailable:   {StatusMaintenance, StatusRetired},
	StatusMaintenance: {StatusAvailable, StatusRetired},
	StatusRetired:     {},
	StatusLoaned:      {},
}

// ValidateManualTransition mirrors the equipment rules: Loaned belongs to the loan lifecycle.
func ValidateManualTransition(current, next Status) error {
	if current == next {
		return nil
	}
	if current == StatusLoaned {
		return ErrChipLoaned
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
