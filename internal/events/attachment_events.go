package events

import "clinic-system/internal/entities"

// AttachmentUploadedEvent возникает после успешного коммита конвейера загрузки.
type AttachmentUploadedEvent struct {
	Attachments []entities.Attachment
}

func (e AttachmentUploadedEvent) Name() string { return "attachment.uploaded" }

// AttachmentDeletedEvent возникает после удаления вложения из реестра.
type AttachmentDeletedEvent struct {
	ID       uint64
	OwnerRef string
	Category string
}

func (e AttachmentDeletedEvent) Name() string { return "attachment.deleted" }
