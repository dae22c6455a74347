package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("clinic_ref", isClinicRef); err != nil {
		return err
	}
	if err := v.RegisterValidation("e164_TJ", isTajikPhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("time_slot", isTimeSlot); err != nil {
		return err
	}
	return nil
}

var clinicRefRegex = regexp.MustCompile(`^CRN-\d{6}$`)

// isClinicRef - клинический номер пациента вида CRN-000123
func isClinicRef(fl validator.FieldLevel) bool {
	return clinicRefRegex.MatchString(fl.Field().String())
}

// isTajikPhoneNumber - проверка +992...
func isTajikPhoneNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^\+992\d{9}$`)
	return re.MatchString(fl.Field().String())
}

var timeSlotRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// isTimeSlot - время операции вида "09:30"
func isTimeSlot(fl validator.FieldLevel) bool {
	return timeSlotRegex.MatchString(fl.Field().String())
}
