package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"talentflow/pkg/utils"
)

// Enum is implemented by the string enums in pkg/models.
type Enum interface {
	Valid() bool
}

// ValidateNotBlank rejects empty and whitespace-only strings
func ValidateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidateEnum accepts values whose type reports them as a member of its enum
func ValidateEnum(fl validator.FieldLevel) bool {
	field := fl.Field()
	if !field.CanInterface() {
		return false
	}
	e, ok := field.Interface().(Enum)
	return ok && e.Valid()
}

// ValidateDate requires a YYYY-MM-DD calendar date
func ValidateDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != len(utils.DateLayout) {
		return false
	}
	_, ok := utils.ParseDate(s)
	return ok
}

// ValidateTimestamp requires an ISO 8601 date or date-time
func ValidateTimestamp(fl validator.FieldLevel) bool {
	_, ok := utils.ParseTimestamp(fl.Field().String())
	return ok
}

// RegisterRecordValidators registers all record-related custom validators
func RegisterRecordValidators(v *validator.Validate) {
	v.RegisterValidation("notblank", ValidateNotBlank)
	v.RegisterValidation("enum", ValidateEnum)
	v.RegisterValidation("date", ValidateDate)
	v.RegisterValidation("timestamp", ValidateTimestamp)

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}
