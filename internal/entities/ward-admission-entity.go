package entities

import "time"

// WardAdmission — госпитализация. Создаётся атомарно вместе с
// минимум двумя снимками (категория ward_admission_image).
type WardAdmission struct {
	ID         uint64    `db:"id"`
	PatientID  uint64    `db:"patient_id"`
	Ward       string    `db:"ward"`
	Bed        string    `db:"bed"`
	Diagnosis  string    `db:"diagnosis"`
	AdmittedAt time.Time `db:"admitted_at"`
	CreatedAt  time.Time `db:"created_at"`
}
