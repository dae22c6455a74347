package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateSurgeryDTO struct {
	OwnerRef    string    `json:"owner_ref" validate:"required,clinic_ref"`
	Theatre     string    `json:"theatre" validate:"required,max=100"`
	SurgeryDate time.Time `json:"surgery_date" validate:"required"`
	TimeSlot    string    `json:"time_slot" validate:"required,time_slot"`
	Procedure   string    `json:"procedure" validate:"required,max=2000"`
}

type UpdateSurgeryDTO struct {
	Theatre     null.String `json:"theatre" validate:"omitempty,max=100"`
	SurgeryDate null.Time   `json:"surgery_date"`
	TimeSlot    null.String `json:"time_slot" validate:"omitempty,time_slot"`
	Status      null.String `json:"status" validate:"omitempty,oneof=scheduled done cancelled"`
}

type SurgeryDTO struct {
	ID          uint64    `json:"id"`
	PatientID   uint64    `json:"patient_id"`
	Theatre     string    `json:"theatre"`
	SurgeryDate time.Time `json:"surgery_date"`
	TimeSlot    string    `json:"time_slot"`
	Procedure   string    `json:"procedure"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
