package entities

import "time"

// Patient — карточка пациента. ClinicRef (CRN-XXXXXX) — логический
// номер, на который ссылаются все клинические вложения.
type Patient struct {
	ID          uint64     `db:"id"`
	ClinicRef   string     `db:"clinic_ref"`
	FullName    string     `db:"full_name"`
	DateOfBirth time.Time  `db:"date_of_birth"`
	Gender      string     `db:"gender"`
	Phone       *string    `db:"phone"`
	Address     *string    `db:"address"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}
