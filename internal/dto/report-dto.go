package dto

// CategoryStatDTO — сводка по одной категории вложений.
type CategoryStatDTO struct {
	Category   string `json:"category"`
	Count      uint64 `json:"count"`
	TotalBytes int64  `json:"total_bytes"`
}

type AttachmentReportItemDTO struct {
	ID        uint64 `json:"id"`
	OwnerRef  string `json:"owner_ref"`
	Patient   string `json:"patient"`
	Category  string `json:"category"`
	FileName  string `json:"file_name"`
	FileSize  int64  `json:"file_size"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
