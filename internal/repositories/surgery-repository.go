package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic-system/internal/entities"
	apperrors "clinic-system/pkg/errors"
)

const (
	surgeryTable  = "surgeries"
	surgeryFields = `id, patient_id, theatre, surgery_date, time_slot, "procedure", status, created_at`
)

type SurgeryRepositoryInterface interface {
	Create(ctx context.Context, s *entities.Surgery) (uint64, error)
	FindByID(ctx context.Context, q Querier, id uint64) (*entities.Surgery, error)
	// ListSchedule отдаёт график, упорядоченный по дате и времени.
	ListSchedule(ctx context.Context, patientID uint64) ([]entities.Surgery, error)
	Update(ctx context.Context, id uint64, s *entities.Surgery) error
	Delete(ctx context.Context, id uint64) error
}

type surgeryRepository struct {
	storage *pgxpool.Pool
}

func NewSurgeryRepository(storage *pgxpool.Pool) SurgeryRepositoryInterface {
	return &surgeryRepository{storage: storage}
}

func scanSurgery(row pgx.Row) (*entities.Surgery, error) {
	var s entities.Surgery
	err := row.Scan(&s.ID, &s.PatientID, &s.Theatre, &s.SurgeryDate,
		&s.TimeSlot, &s.Procedure, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования surgeries: %w", err)
	}
	return &s, nil
}

func (r *surgeryRepository) Create(ctx context.Context, s *entities.Surgery) (uint64, error) {
	query := `
		INSERT INTO surgeries (patient_id, theatre, surgery_date, time_slot, "procedure", status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.storage.QueryRow(ctx, query,
		s.PatientID, s.Theatre, s.SurgeryDate, s.TimeSlot, s.Procedure, s.Status,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 - уникальный индекс (theatre, surgery_date, time_slot):
		// двойное бронирование отклоняет сама БД, гонка двух запросов
		// не оставляет дубликатов.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.ErrSurgerySlotTaken
		}
		return 0, err
	}
	return s.ID, nil
}

func (r *surgeryRepository) FindByID(ctx context.Context, q Querier, id uint64) (*entities.Surgery, error) {
	if q == nil {
		q = r.storage
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", surgeryFields, surgeryTable)
	return scanSurgery(q.QueryRow(ctx, query, id))
}

func (r *surgeryRepository) ListSchedule(ctx context.Context, patientID uint64) ([]entities.Surgery, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", surgeryFields, surgeryTable)
	args := []any{}
	if patientID != 0 {
		query += " WHERE patient_id = $1"
		args = append(args, patientID)
	}
	query += " ORDER BY surgery_date, time_slot, theatre"

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surgeries []entities.Surgery
	for rows.Next() {
		var s entities.Surgery
		if err := rows.Scan(&s.ID, &s.PatientID, &s.Theatre, &s.SurgeryDate,
			&s.TimeSlot, &s.Procedure, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		surgeries = append(surgeries, s)
	}
	return surgeries, rows.Err()
}

func (r *surgeryRepository) Update(ctx context.Context, id uint64, s *entities.Surgery) error {
	query := `
		UPDATE surgeries
		SET theatre = $1, surgery_date = $2, time_slot = $3, status = $4
		WHERE id = $5`
	result, err := r.storage.Exec(ctx, query, s.Theatre, s.SurgeryDate, s.TimeSlot, s.Status, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrSurgerySlotTaken
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *surgeryRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM surgeries WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
