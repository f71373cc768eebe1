package chip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateManualTransition(t *testing.T) {
	assert.NoError(t, ValidateManualTransition(StatusAvailable, StatusRetired))
	assert.NoError(t, ValidateManualTransition(StatusMaintenance, StatusAvailable))
	assert.ErrorIs(t, ValidateManualTransition(StatusAvailable, StatusLoaned), ErrInvalidStatusTransition)
	assert.ErrorIs(t, ValidateManualTransition(StatusLoaned, StatusAvailable), ErrChipLoaned)
	assert.ErrorIs(t, ValidateManualTransition(StatusRetired, StatusAvailable), ErrInvalidStatusTransition)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Baja", StatusRetired.DisplayName())
	assert.Equal(t, "Available", StatusAvailable.DisplayName())
}
