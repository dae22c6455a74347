package services

import (
	"context"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"clinic-system/config"
	"clinic-system/internal/dto"
	"clinic-system/internal/entities"
	"clinic-system/internal/events"
	"clinic-system/internal/repositories"
	"clinic-system/pkg/eventbus"
	"clinic-system/pkg/filestorage"
)

// Значок для вложений без миниатюры (PDF и прочие нерастровые типы).
const pdfThumbnailURL = "/static/icons/pdf.png"

type AttachmentServiceInterface interface {
	Upload(ctx context.Context, category string, payload dto.UploadAttachmentDTO, files []*multipart.FileHeader) ([]dto.AttachmentDTO, error)
	Delete(ctx context.Context, id uint64) (dto.DeleteAttachmentResultDTO, error)
	ListByOwner(ctx context.Context, ownerRef string, category string, status string) ([]dto.AttachmentDTO, error)
	// Download отдаёт содержимое файла, метаданные и content-type.
	Download(ctx context.Context, id uint64) (io.ReadCloser, *entities.Attachment, string, error)
}

type attachmentService struct {
	pipeline       *UploadPipeline
	attachmentRepo repositories.AttachmentRepositoryInterface
	orderRepo      repositories.MedicalOrderRepositoryInterface
	surgeryRepo    repositories.SurgeryRepositoryInterface
	fileStorage    filestorage.FileStorageInterface
	notifier       NotificationServiceInterface
	bus            *eventbus.Bus
	logger         *zap.Logger
}

func NewAttachmentService(
	pipeline *UploadPipeline,
	attachmentRepo repositories.AttachmentRepositoryInterface,
	orderRepo repositories.MedicalOrderRepositoryInterface,
	surgeryRepo repositories.SurgeryRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	notifier NotificationServiceInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) AttachmentServiceInterface {
	return &attachmentService{
		pipeline:       pipeline,
		attachmentRepo: attachmentRepo,
		orderRepo:      orderRepo,
		surgeryRepo:    surgeryRepo,
		fileStorage:    fileStorage,
		notifier:       notifier,
		bus:            bus,
		logger:         logger,
	}
}

func (s *attachmentService) Upload(ctx context.Context, category string, payload dto.UploadAttachmentDTO, files []*multipart.FileHeader) ([]dto.AttachmentDTO, error) {
	cmd := UploadCommand{
		Category: category,
		OwnerRef: payload.OwnerRef,
		Files:    files,
		Notes:    payload.Notes.Ptr(),
		Status:   entities.AttachmentStatusCompleted,
	}

	if payload.OrderID.Valid {
		orderID := uint64(payload.OrderID.Int)
		if _, err := s.orderRepo.FindByID(ctx, nil, orderID); err != nil {
			return nil, err
		}
		cmd.OrderID = &orderID
		if category == config.CategoryInvestigationReport {
			// Отчёт об исследовании закрывает назначение: перевод в
			// completed коммитится вместе с записью реестра.
			cmd.FinalizeTx = func(tx pgx.Tx) error {
				return s.orderRepo.UpdateStatus(ctx, tx, orderID, entities.OrderStatusCompleted)
			}
		}
	}

	if payload.SurgeryID.Valid {
		surgeryID := uint64(payload.SurgeryID.Int)
		if _, err := s.surgeryRepo.FindByID(ctx, nil, surgeryID); err != nil {
			return nil, err
		}
		cmd.SurgeryID = &surgeryID
	}

	created, err := s.pipeline.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}

	result := make([]dto.AttachmentDTO, 0, len(created))
	for _, a := range created {
		result = append(result, toAttachmentDTO(a))
	}
	return result, nil
}

// Delete убирает вложение из реестра, затем удаляет файл. Если файл
// удалить не удалось, запись уже отсутствует: возвращаем успех с
// предупреждением и уведомляем администраторов.
func (s *attachmentService) Delete(ctx context.Context, id uint64) (dto.DeleteAttachmentResultDTO, error) {
	a, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		return dto.DeleteAttachmentResultDTO{}, err
	}

	if err := s.attachmentRepo.Delete(ctx, id); err != nil {
		return dto.DeleteAttachmentResultDTO{}, err
	}

	result := dto.DeleteAttachmentResultDTO{ID: id}
	if err := s.fileStorage.Delete(a.StoredPath); err != nil {
		s.notifier.NotifyBlobDeleteFailed(ctx, a.StoredPath, id, err)
		result.Warning = "запись удалена, но файл в хранилище удалить не удалось"
	}

	s.bus.Publish(ctx, events.AttachmentDeletedEvent{
		ID:       id,
		OwnerRef: a.OwnerRef,
		Category: a.Category,
	})
	return result, nil
}

func (s *attachmentService) ListByOwner(ctx context.Context, ownerRef string, category string, status string) ([]dto.AttachmentDTO, error) {
	attachments, err := s.attachmentRepo.ListByOwner(ctx, ownerRef, category, status)
	if err != nil {
		return nil, err
	}
	result := make([]dto.AttachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		result = append(result, toAttachmentDTO(a))
	}
	return result, nil
}

func (s *attachmentService) Download(ctx context.Context, id uint64) (io.ReadCloser, *entities.Attachment, string, error) {
	a, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, "", err
	}
	rc, err := s.fileStorage.Open(a.StoredPath)
	if err != nil {
		s.logger.Error("файл вложения недоступен в хранилище",
			zap.Uint64("attachment_id", id),
			zap.String("stored_path", a.StoredPath),
			zap.Error(err),
		)
		return nil, nil, "", err
	}
	return rc, a, contentTypeByName(a.OriginalFileName), nil
}

func toAttachmentDTO(a entities.Attachment) dto.AttachmentDTO {
	url := "/uploads/" + a.StoredPath
	thumbnail := pdfThumbnailURL
	if isImageName(a.OriginalFileName) {
		thumbnail = url
	}
	return dto.AttachmentDTO{
		ID:           a.ID,
		OwnerRef:     a.OwnerRef,
		Category:     a.Category,
		FileName:     a.OriginalFileName,
		FileSize:     a.FileSize,
		Status:       a.Status,
		URL:          url,
		ThumbnailURL: thumbnail,
		CreatedAt:    a.CreatedAt,
	}
}

func isImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".heic", ".heif":
		return true
	}
	return false
}

func contentTypeByName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".heic", ".heif":
		return "image/heic"
	default:
		return "application/octet-stream"
	}
}
