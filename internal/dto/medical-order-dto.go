package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateMedicalOrderDTO struct {
	OwnerRef       string      `json:"owner_ref" validate:"required,clinic_ref"`
	OrderingDoctor string      `json:"ordering_doctor" validate:"required,max=255"`
	Investigations string      `json:"investigations" validate:"required,max=2000"`
	Notes          null.String `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateMedicalOrderDTO struct {
	OrderingDoctor null.String `json:"ordering_doctor" validate:"omitempty,max=255"`
	Investigations null.String `json:"investigations" validate:"omitempty,max=2000"`
	Notes          null.String `json:"notes" validate:"omitempty,max=1000"`
}

type MedicalOrderDTO struct {
	ID             uint64    `json:"id"`
	PatientID      uint64    `json:"patient_id"`
	OwnerRef       string    `json:"owner_ref,omitempty"`
	OrderingDoctor string    `json:"ordering_doctor"`
	Investigations string    `json:"investigations"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
