package entities

import "time"

// Attachment — одно сохранённое клиническое вложение: файл в хранилище
// плюс учётная запись в реестре. StoredPath уникален и относителен
// корня хранилища.
type Attachment struct {
	ID               uint64    `db:"id"`
	OwnerRef         string    `db:"owner_ref"`
	Category         string    `db:"category"`
	StoredPath       string    `db:"stored_path"`
	OriginalFileName string    `db:"original_file_name"`
	FileType         string    `db:"file_type"`
	FileSize         int64     `db:"file_size"`
	Status           string    `db:"status"`
	Notes            *string   `db:"notes"`
	OrderID          *uint64   `db:"order_id"`
	AdmissionID      *uint64   `db:"admission_id"`
	SurgeryID        *uint64   `db:"surgery_id"`
	CreatedAt        time.Time `db:"created_at"`
}

// Статусы вложений.
const (
	AttachmentStatusPending   = "pending"
	AttachmentStatusCompleted = "completed"
)
