package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"clinic-system/config"
	"clinic-system/internal/entities"
	"clinic-system/internal/events"
	"clinic-system/internal/repositories"
	apperrors "clinic-system/pkg/errors"
	"clinic-system/pkg/eventbus"
	"clinic-system/pkg/filestorage"
	"clinic-system/pkg/validation"
)

// UploadCommand — один вызов конвейера загрузки. Многофайловые категории
// (снимки госпитализации) передают весь пакет одной командой: ошибка
// валидации любого файла отменяет пакет до записи на диск.
type UploadCommand struct {
	Category string
	OwnerRef string
	Files    []*multipart.FileHeader
	Notes    *string
	OrderID  *uint64
	SurgeryID *uint64
	// Status проставляется каждой созданной записи реестра.
	Status string
	// PrepareTx выполняется в транзакции регистрации до вставки вложений;
	// возвращённый id становится admission_id каждой строки (создание
	// госпитализации и её снимков коммитится атомарно).
	PrepareTx func(tx pgx.Tx) (uint64, error)
	// FinalizeTx выполняется в той же транзакции после вставки вложений
	// (например, перевод медицинского назначения в completed).
	FinalizeTx func(tx pgx.Tx) error
}

// UploadPipeline — единственный путь записи клинических вложений:
// Validating -> Storing -> Registering -> Committed. Раньше эту логику
// повторял каждый контроллер со своими расхождениями.
type UploadPipeline struct {
	fileStorage    filestorage.FileStorageInterface
	attachmentRepo repositories.AttachmentRepositoryInterface
	patientRepo    repositories.PatientRepositoryInterface
	txManager      repositories.TxManagerInterface
	notifier       NotificationServiceInterface
	bus            *eventbus.Bus
	logger         *zap.Logger
}

func NewUploadPipeline(
	fileStorage filestorage.FileStorageInterface,
	attachmentRepo repositories.AttachmentRepositoryInterface,
	patientRepo repositories.PatientRepositoryInterface,
	txManager repositories.TxManagerInterface,
	notifier NotificationServiceInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *UploadPipeline {
	return &UploadPipeline{
		fileStorage:    fileStorage,
		attachmentRepo: attachmentRepo,
		patientRepo:    patientRepo,
		txManager:      txManager,
		notifier:       notifier,
		bus:            bus,
		logger:         logger,
	}
}

type storedFile struct {
	path   string
	header *multipart.FileHeader
}

func (p *UploadPipeline) Run(ctx context.Context, cmd UploadCommand) ([]entities.Attachment, error) {
	rules, ok := config.UploadContexts[cmd.Category]
	if !ok {
		return nil, apperrors.ErrUnknownCategory
	}

	// --- Validating: ни одного побочного эффекта до конца этапа ---
	if len(cmd.Files) == 0 {
		return nil, apperrors.ErrNoFilesProvided
	}
	if len(cmd.Files) < rules.MinFiles {
		return nil, fmt.Errorf("%w: категория '%s' требует минимум %d файлов, передано %d",
			apperrors.ErrNotEnoughFiles, cmd.Category, rules.MinFiles, len(cmd.Files))
	}

	if _, err := p.patientRepo.FindByClinicRef(ctx, nil, cmd.OwnerRef); err != nil {
		return nil, err
	}

	opened := make([]multipart.File, 0, len(cmd.Files))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range cmd.Files {
		src, err := fh.Open()
		if err != nil {
			return nil, apperrors.NewInvalidInputError("не удалось открыть файл '%s'", fh.Filename)
		}
		opened = append(opened, src)
		if err := validation.ValidateFile(fh, src, cmd.Category); err != nil {
			return nil, err
		}
	}

	// --- Storing ---
	stored := make([]storedFile, 0, len(cmd.Files))
	for i, fh := range cmd.Files {
		path, err := p.fileStorage.Save(opened[i], fh.Filename, rules.PathPrefix, cmd.OwnerRef)
		if err != nil {
			p.logger.Error("ошибка записи файла в хранилище",
				zap.String("owner_ref", cmd.OwnerRef),
				zap.String("category", cmd.Category),
				zap.String("file_name", fh.Filename),
				zap.Error(err),
			)
			p.compensate(ctx, cmd, stored, err)
			return nil, err
		}
		stored = append(stored, storedFile{path: path, header: fh})
	}

	// --- Registering: реестр и связанные записи в одной транзакции ---
	created := make([]entities.Attachment, 0, len(stored))
	err := p.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var admissionID *uint64
		if cmd.PrepareTx != nil {
			id, err := cmd.PrepareTx(tx)
			if err != nil {
				return err
			}
			admissionID = &id
		}

		for _, sf := range stored {
			a := entities.Attachment{
				OwnerRef:         cmd.OwnerRef,
				Category:         cmd.Category,
				StoredPath:       sf.path,
				OriginalFileName: sf.header.Filename,
				FileType:         strings.TrimPrefix(strings.ToLower(filepath.Ext(sf.header.Filename)), "."),
				FileSize:         sf.header.Size,
				Status:           cmd.Status,
				Notes:            cmd.Notes,
				OrderID:          cmd.OrderID,
				AdmissionID:      admissionID,
				SurgeryID:        cmd.SurgeryID,
			}
			if _, err := p.attachmentRepo.Create(ctx, tx, &a); err != nil {
				return err
			}
			created = append(created, a)
		}

		if cmd.FinalizeTx != nil {
			return cmd.FinalizeTx(tx)
		}
		return nil
	})
	if err != nil {
		p.logger.Error("регистрация вложений не удалась, откат записанных файлов",
			zap.String("owner_ref", cmd.OwnerRef),
			zap.String("category", cmd.Category),
			zap.Error(err),
		)
		p.compensate(ctx, cmd, stored, err)
		return nil, err
	}

	// --- Committed ---
	p.bus.Publish(ctx, events.AttachmentUploadedEvent{Attachments: created})
	return created, nil
}

// compensate убирает уже записанные файлы после сбоя конвейера.
// Лучшее из возможного: если удаление тоже падает, файл попадает
// в уведомление для ручной сверки.
func (p *UploadPipeline) compensate(ctx context.Context, cmd UploadCommand, stored []storedFile, cause error) {
	for _, sf := range stored {
		if err := p.fileStorage.Delete(sf.path); err != nil {
			p.notifier.NotifyOrphanedBlob(ctx, sf.path, cmd.OwnerRef, cmd.Category, err)
		}
	}
}
