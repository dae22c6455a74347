package entities

import "time"

// Surgery — запись в график операций. Пара (операционная, дата, время)
// уникальна: двойное бронирование отклоняется при записи.
type Surgery struct {
	ID          uint64    `db:"id"`
	PatientID   uint64    `db:"patient_id"`
	Theatre     string    `db:"theatre"`
	SurgeryDate time.Time `db:"surgery_date"`
	TimeSlot    string    `db:"time_slot"`
	Procedure   string    `db:"procedure"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

const (
	SurgeryStatusScheduled = "scheduled"
	SurgeryStatusDone      = "done"
	SurgeryStatusCancelled = "cancelled"
)
