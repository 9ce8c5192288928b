package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// A failed registration means struct tags referencing the rule can
	// never validate, so fail at startup rather than per request.
	if err := validate.RegisterValidation("calendar_date", validateCalendarDate); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("clock_time", validateClockTime); err != nil {
		panic(err)
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateCalendarDate accepts ISO YYYY-MM-DD dates only; the format is
// load-bearing because the column is compared lexicographically.
func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}
