package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"clinic-system/internal/entities"
)

// CategoryStat — агрегат по одной категории вложений.
type CategoryStat struct {
	Category   string
	Count      uint64
	TotalBytes int64
}

// ReportItem — строка отчёта по вложениям (вложение + ФИО пациента).
type ReportItem struct {
	Attachment entities.Attachment
	Patient    string
}

type ReportRepositoryInterface interface {
	GetCategoryStats(ctx context.Context) ([]CategoryStat, error)
	GetAttachmentReport(ctx context.Context, limit, offset int) ([]ReportItem, uint64, error)
}

type reportRepository struct {
	storage *pgxpool.Pool
}

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{storage: storage}
}

func (r *reportRepository) GetCategoryStats(ctx context.Context) ([]CategoryStat, error) {
	query := `
		SELECT category, COUNT(*), COALESCE(SUM(file_size), 0)
		FROM attachments
		GROUP BY category
		ORDER BY category`
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []CategoryStat
	for rows.Next() {
		var s CategoryStat
		if err := rows.Scan(&s.Category, &s.Count, &s.TotalBytes); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *reportRepository) GetAttachmentReport(ctx context.Context, limit, offset int) ([]ReportItem, uint64, error) {
	query := fmt.Sprintf(`
		SELECT %s, p.full_name
		FROM attachments a
		JOIN patients p ON p.clinic_ref = a.owner_ref
		ORDER BY a.created_at DESC
		LIMIT $1 OFFSET $2`,
		"a.id, a.owner_ref, a.category, a.stored_path, a.original_file_name, a.file_type, a.file_size, a.status, a.notes, a.order_id, a.admission_id, a.surgery_id, a.created_at")

	rows, err := r.storage.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []ReportItem
	for rows.Next() {
		var item ReportItem
		a := &item.Attachment
		if err := rows.Scan(
			&a.ID, &a.OwnerRef, &a.Category, &a.StoredPath, &a.OriginalFileName,
			&a.FileType, &a.FileSize, &a.Status, &a.Notes,
			&a.OrderID, &a.AdmissionID, &a.SurgeryID, &a.CreatedAt,
			&item.Patient,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM attachments").Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
