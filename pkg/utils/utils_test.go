package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "electrotrack/pkg/errors"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims", "  Laptop Dell  ", "Laptop Dell"},
		{"strips tags", "<b>Lenovo</b> T14", "Lenovo T14"},
		{"drops control chars", "SN\x00-123\x07", "SN-123"},
		{"keeps accents", "Dañado", "Dañado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeString(tt.input))
		})
	}
}

func TestSanitizeTextKeepsNewlines(t *testing.T) {
	assert.Equal(t, "line one\nline two", SanitizeText(" line one\nline two\x00 "))
}

func TestSanitizePhone(t *testing.T) {
	assert.Equal(t, "+591 (2) 555-1234", SanitizePhone("+591 (2) 555-1234 ext"))
}

func TestSanitizeList(t *testing.T) {
	assert.Nil(t, SanitizeList(nil))
	assert.Equal(t, []string{"Cargador", "Mouse"}, SanitizeList([]string{" Cargador ", "", "<i>Mouse</i>"}))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3cretpass"))
	assert.False(t, CheckPassword(hash, "other"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("abcdef12"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("onlyletters"))
	assert.Error(t, ValidatePassword("12345678"))
}

func ptr[T any](v T) *T { return &v }

type enumPayload struct {
	Condition string  `validate:"required,asset_condition"`
	Status    *string `validate:"omitempty,equipment_status"`
	Role      string  `validate:"omitempty,user_role"`
}

func TestValidateStructCustomTags(t *testing.T) {
	assert.NoError(t, ValidateStruct(&enumPayload{Condition: "Dañado", Status: ptr("Maintenance")}))

	err := ValidateStruct(&enumPayload{Condition: "Broken", Role: "root"})
	require.Error(t, err)

	messages := ValidationMessages(err)
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], "Condition must be one of")
	assert.Contains(t, messages[1], "Role must be one of")
}

func TestValidationMessagesPlainError(t *testing.T) {
	assert.Nil(t, ValidationMessages(nil))
	assert.Equal(t, []string{"boom"}, ValidationMessages(errors.New("boom")))
}

func TestTokenRoundTrip(t *testing.T) {
	id := uuid.New()
	token, expiresAt, err := GenerateAccessToken(id, "jperez", "operator", "secret", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "jperez", claims.Username)
	assert.Equal(t, "operator", claims.Role)
}

func TestValidateTokenRejects(t *testing.T) {
	token, _, err := GenerateAccessToken(uuid.New(), "jperez", "admin", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "wrong")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	expired, _, err := GenerateAccessToken(uuid.New(), "jperez", "admin", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired, "secret")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}
