package dto

import "time"

// CreateWardAdmissionDTO — метаданные multipart-запроса госпитализации.
// Снимки (минимум два) приходят в поле "images".
type CreateWardAdmissionDTO struct {
	OwnerRef   string    `form:"owner_ref" validate:"required,clinic_ref"`
	Ward       string    `form:"ward" validate:"required,max=100"`
	Bed        string    `form:"bed" validate:"required,max=50"`
	Diagnosis  string    `form:"diagnosis" validate:"required,max=2000"`
	AdmittedAt time.Time `form:"admitted_at" validate:"required"`
}

type WardAdmissionDTO struct {
	ID         uint64          `json:"id"`
	PatientID  uint64          `json:"patient_id"`
	Ward       string          `json:"ward"`
	Bed        string          `json:"bed"`
	Diagnosis  string          `json:"diagnosis"`
	AdmittedAt time.Time       `json:"admitted_at"`
	CreatedAt  time.Time       `json:"created_at"`
	Images     []AttachmentDTO `json:"images,omitempty"`
}
