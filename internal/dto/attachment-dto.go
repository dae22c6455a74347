package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

// UploadAttachmentDTO — метаданные multipart-запроса загрузки.
// Сами файлы приходят в поле "files". Снимки госпитализации загружаются
// только через оформление госпитализации, поэтому admission_id здесь нет.
type UploadAttachmentDTO struct {
	OwnerRef  string      `form:"owner_ref" validate:"required,clinic_ref"`
	OrderID   null.Int    `form:"order_id" validate:"omitempty,min=1"`
	SurgeryID null.Int    `form:"surgery_id" validate:"omitempty,min=1"`
	Notes     null.String `form:"notes" validate:"omitempty,max=1000"`
}

type AttachmentDTO struct {
	ID           uint64    `json:"id"`
	OwnerRef     string    `json:"owner_ref"`
	Category     string    `json:"category"`
	FileName     string    `json:"file_name"`
	FileSize     int64     `json:"file_size"`
	Status       string    `json:"status,omitempty"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// DeleteAttachmentResultDTO — результат удаления. Warning заполняется,
// когда запись удалена, а файл удалить не удалось.
type DeleteAttachmentResultDTO struct {
	ID      uint64 `json:"id"`
	Warning string `json:"warning,omitempty"`
}

type RepairResultDTO struct {
	Scanned  int `json:"scanned"`
	Repaired int `json:"repaired"`
}
