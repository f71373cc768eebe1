package equipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateManualTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		wantErr error
	}{
		{"same status", StatusAvailable, StatusAvailable, nil},
		{"available to maintenance", StatusAvailable, StatusMaintenance, nil},
		{"maintenance back to available", StatusMaintenance, StatusAvailable, nil},
		{"damaged to maintenance", StatusDamaged, StatusMaintenance, nil},
		{"cannot enter loaned", StatusAvailable, StatusLoaned, ErrInvalidStatusTransition},
		{"cannot leave loaned", StatusLoaned, StatusAvailable, ErrEquipmentLoaned},
		{"retired is final", StatusRetired, StatusAvailable, ErrInvalidStatusTransition},
		{"unknown current", Status("Lost"), StatusAvailable, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManualTransition(tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConditionIsValid(t *testing.T) {
	assert.True(t, ConditionDamaged.IsValid())
	assert.False(t, Condition("Broken").IsValid())
	assert.True(t, StatusDamaged.IsValid())
	assert.False(t, Status("Lost").IsValid())
}
