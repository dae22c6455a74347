package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreatePatientDTO struct {
	FullName    string      `json:"full_name" validate:"required,max=255"`
	DateOfBirth time.Time   `json:"date_of_birth" validate:"required"`
	Gender      string      `json:"gender" validate:"required,oneof=male female"`
	Phone       null.String `json:"phone" validate:"omitempty,e164_TJ"`
	Address     null.String `json:"address" validate:"omitempty,max=500"`
}

type UpdatePatientDTO struct {
	FullName null.String `json:"full_name" validate:"omitempty,max=255"`
	Phone    null.String `json:"phone" validate:"omitempty,e164_TJ"`
	Address  null.String `json:"address" validate:"omitempty,max=500"`
}

type PatientDTO struct {
	ID          uint64    `json:"id"`
	ClinicRef   string    `json:"clinic_ref"`
	FullName    string    `json:"full_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	Phone       *string   `json:"phone,omitempty"`
	Address     *string   `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
