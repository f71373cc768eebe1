package utils

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Vocabularies accepted at the API boundary.
var (
	AssetConditions   = []string{"Excelente", "Bueno", "Regular", "Malo", "Dañado"}
	EquipmentStatuses = []string{"Available", "Loaned", "Maintenance", "Retired", "Damaged"}
	ChipStatuses      = []string{"Available", "Loaned", "Maintenance", "Retired"}
	UserRoles         = []string{"admin", "operator", "viewer"}
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		registerEnum(validate, "asset_condition", AssetConditions)
		registerEnum(validate, "equipment_status", EquipmentStatuses)
		registerEnum(validate, "chip_status", ChipStatuses)
		registerEnum(validate, "user_role", UserRoles)
	})
	return validate
}

func registerEnum(v *validator.Validate, tag string, values []string) {
	allowed := make(map[string]struct{}, len(values))
	for _, value := range values {
		allowed[value] = struct{}{}
	}
	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	})
}

// ValidateStruct runs the `validate` tags of s.
func ValidateStruct(s interface{}) error {
	return getValidator().Struct(s)
}

// ValidationMessages flattens validator errors into readable strings.
func ValidationMessages(err error) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "min", "max", "len":
			messages = append(messages, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "asset_condition":
			messages = append(messages, fmt.Sprintf("%s must be one of %v", field, AssetConditions))
		case "equipment_status":
			messages = append(messages, fmt.Sprintf("%s must be one of %v", field, EquipmentStatuses))
		case "chip_status":
			messages = append(messages, fmt.Sprintf("%s must be one of %v", field, ChipStatuses))
		case "user_role":
			messages = append(messages, fmt.Sprintf("%s must be one of %v", field, UserRoles))
		default:
			messages = append(messages, fmt.Sprintf("%s failed on %s", field, fe.Tag()))
		}
	}
	return messages
}
