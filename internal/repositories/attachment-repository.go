package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic-system/internal/entities"
	apperrors "clinic-system/pkg/errors"
)

const (
	attachmentTable  = "attachments"
	attachmentFields = "id, owner_ref, category, stored_path, original_file_name, file_type, file_size, status, notes, order_id, admission_id, surgery_id, created_at"
)

type AttachmentRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, a *entities.Attachment) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Attachment, error)
	ListByOwner(ctx context.Context, ownerRef string, category string, status string) ([]entities.Attachment, error)
	Delete(ctx context.Context, id uint64) error
	// ListAll отдаёт все вложения для пакетной проверки путей.
	ListAll(ctx context.Context) ([]entities.Attachment, error)
	UpdateStoredPath(ctx context.Context, tx pgx.Tx, id uint64, storedPath string) error
}

type attachmentRepository struct {
	storage *pgxpool.Pool
}

func NewAttachmentRepository(storage *pgxpool.Pool) AttachmentRepositoryInterface {
	return &attachmentRepository{storage: storage}
}

func scanAttachment(row pgx.Row) (*entities.Attachment, error) {
	var a entities.Attachment
	err := row.Scan(
		&a.ID, &a.OwnerRef, &a.Category, &a.StoredPath, &a.OriginalFileName,
		&a.FileType, &a.FileSize, &a.Status, &a.Notes,
		&a.OrderID, &a.AdmissionID, &a.SurgeryID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования attachments: %w", err)
	}
	return &a, nil
}

func (r *attachmentRepository) Create(ctx context.Context, tx pgx.Tx, a *entities.Attachment) (uint64, error) {
	query := `
		INSERT INTO attachments
		(owner_ref, category, stored_path, original_file_name, file_type, file_size, status, notes, order_id, admission_id, surgery_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`
	err := tx.QueryRow(ctx, query,
		a.OwnerRef, a.Category, a.StoredPath, a.OriginalFileName,
		a.FileType, a.FileSize, a.Status, a.Notes,
		a.OrderID, a.AdmissionID, a.SurgeryID,
	).Scan(&a.ID, &a.CreatedAt)
	return a.ID, err
}

func (r *attachmentRepository) FindByID(ctx context.Context, id uint64) (*entities.Attachment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", attachmentFields, attachmentTable)
	return scanAttachment(r.storage.QueryRow(ctx, query, id))
}

// ListByOwner возвращает вложения пациента, новые первыми.
func (r *attachmentRepository) ListByOwner(ctx context.Context, ownerRef string, category string, status string) ([]entities.Attachment, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(attachmentFields).
		From(attachmentTable).
		Where(sq.Eq{"owner_ref": ownerRef}).
		OrderBy("created_at DESC", "id DESC")
	if category != "" {
		builder = builder.Where(sq.Eq{"category": category})
	}
	if status != "" {
		builder = builder.Where(sq.Eq{"status": status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для списка вложений: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttachments(rows)
}

func (r *attachmentRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM attachments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAttachmentNotFound
	}
	return nil
}

func (r *attachmentRepository) ListAll(ctx context.Context) ([]entities.Attachment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", attachmentFields, attachmentTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttachments(rows)
}

func (r *attachmentRepository) UpdateStoredPath(ctx context.Context, tx pgx.Tx, id uint64, storedPath string) error {
	result, err := tx.Exec(ctx, "UPDATE attachments SET stored_path = $1 WHERE id = $2", storedPath, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAttachmentNotFound
	}
	return nil
}

func collectAttachments(rows pgx.Rows) ([]entities.Attachment, error) {
	var attachments []entities.Attachment
	for rows.Next() {
		var a entities.Attachment
		if err := rows.Scan(
			&a.ID, &a.OwnerRef, &a.Category, &a.StoredPath, &a.OriginalFileName,
			&a.FileType, &a.FileSize, &a.Status, &a.Notes,
			&a.OrderID, &a.AdmissionID, &a.SurgeryID, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}
