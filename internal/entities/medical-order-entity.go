package entities

import "time"

// MedicalOrder — назначение врача на исследование. Статус становится
// completed, когда по назначению загружен отчёт об исследовании.
type MedicalOrder struct {
	ID             uint64     `db:"id"`
	PatientID      uint64     `db:"patient_id"`
	OrderingDoctor string     `db:"ordering_doctor"`
	Investigations string     `db:"investigations"`
	Status         string     `db:"status"`
	Notes          *string    `db:"notes"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)
