package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type clinicRefPayload struct {
	Ref string `validate:"required,clinic_ref"`
}

type timeSlotPayload struct {
	Slot string `validate:"required,time_slot"`
}

type phonePayload struct {
	Phone string `validate:"required,e164_TJ"`
}

func TestClinicRefRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&clinicRefPayload{Ref: "CRN-000123"}))

	for _, bad := range []string{"CRN-123", "crn-000123", "CRN-0001234", "000123", "CRN-00012a"} {
		assert.Error(t, v.Validate(&clinicRefPayload{Ref: bad}), bad)
	}
}

func TestTimeSlotRule(t *testing.T) {
	v := New()

	for _, good := range []string{"00:00", "09:30", "23:59"} {
		assert.NoError(t, v.Validate(&timeSlotPayload{Slot: good}), good)
	}
	for _, bad := range []string{"24:00", "9:30", "12:60", "12-30", "полдень"} {
		assert.Error(t, v.Validate(&timeSlotPayload{Slot: bad}), bad)
	}
}

func TestTajikPhoneRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&phonePayload{Phone: "+992900123456"}))
	assert.Error(t, v.Validate(&phonePayload{Phone: "900123456"}))
	assert.Error(t, v.Validate(&phonePayload{Phone: "+7900123456"}))
}
