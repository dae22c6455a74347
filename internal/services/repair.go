package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"clinic-system/internal/dto"
	"clinic-system/internal/repositories"
	"clinic-system/pkg/filestorage"
)

type RepairServiceInterface interface {
	// RepairPaths приводит все сохранённые пути реестра к канонической
	// форме. Повторный запуск ничего не меняет.
	RepairPaths(ctx context.Context) (dto.RepairResultDTO, error)
}

type repairService struct {
	attachmentRepo repositories.AttachmentRepositoryInterface
	txManager      repositories.TxManagerInterface
	sanitizer      *filestorage.Sanitizer
	logger         *zap.Logger
}

func NewRepairService(
	attachmentRepo repositories.AttachmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	sanitizer *filestorage.Sanitizer,
	logger *zap.Logger,
) RepairServiceInterface {
	return &repairService{
		attachmentRepo: attachmentRepo,
		txManager:      txManager,
		sanitizer:      sanitizer,
		logger:         logger,
	}
}

func (s *repairService) RepairPaths(ctx context.Context) (dto.RepairResultDTO, error) {
	attachments, err := s.attachmentRepo.ListAll(ctx)
	if err != nil {
		return dto.RepairResultDTO{}, err
	}

	type fix struct {
		id   uint64
		path string
	}
	var fixes []fix
	for _, a := range attachments {
		if fixed := s.sanitizer.Sanitize(a.StoredPath); fixed != a.StoredPath {
			fixes = append(fixes, fix{id: a.ID, path: fixed})
		}
	}

	if len(fixes) > 0 {
		// Все исправления в одной транзакции: частично починенный
		// реестр хуже непочиненного.
		err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			for _, f := range fixes {
				if err := s.attachmentRepo.UpdateStoredPath(ctx, tx, f.id, f.path); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return dto.RepairResultDTO{}, err
		}
	}

	s.logger.Info("завершена проверка путей вложений",
		zap.Int("scanned", len(attachments)),
		zap.Int("repaired", len(fixes)),
	)
	return dto.RepairResultDTO{Scanned: len(attachments), Repaired: len(fixes)}, nil
}
