package services

import (
	"context"

	"go.uber.org/zap"
)

// NotificationServiceInterface — служебные уведомления администраторам.
type NotificationServiceInterface interface {
	// NotifyOrphanedBlob сообщает о файле, оставшемся в хранилище без
	// записи в реестре (сбой компенсации). Такие файлы убирает ручная
	// сверка по списку из уведомления.
	NotifyOrphanedBlob(ctx context.Context, storedPath string, ownerRef string, category string, cause error)
	NotifyBlobDeleteFailed(ctx context.Context, storedPath string, attachmentID uint64, cause error)
}

type notificationService struct {
	adminEmails []string
	logger      *zap.Logger
}

// NewNotificationService получает адреса администраторов из конфигурации,
// а не из констант в коде.
func NewNotificationService(adminEmails []string, logger *zap.Logger) NotificationServiceInterface {
	return &notificationService{adminEmails: adminEmails, logger: logger}
}

func (s *notificationService) NotifyOrphanedBlob(ctx context.Context, storedPath string, ownerRef string, category string, cause error) {
	s.logger.Error("осиротевший файл в хранилище, требуется ручная сверка",
		zap.String("stored_path", storedPath),
		zap.String("owner_ref", ownerRef),
		zap.String("category", category),
		zap.Strings("notify", s.adminEmails),
		zap.Error(cause),
	)
}

func (s *notificationService) NotifyBlobDeleteFailed(ctx context.Context, storedPath string, attachmentID uint64, cause error) {
	s.logger.Error("запись реестра удалена, но файл остался в хранилище",
		zap.String("stored_path", storedPath),
		zap.Uint64("attachment_id", attachmentID),
		zap.Strings("notify", s.adminEmails),
		zap.Error(cause),
	)
}
