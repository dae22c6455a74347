package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic-system/internal/entities"
	apperrors "clinic-system/pkg/errors"
)

const (
	medicalOrderTable  = "medical_orders"
	medicalOrderFields = "id, patient_id, ordering_doctor, investigations, status, notes, created_at, updated_at"
)

type MedicalOrderRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, o *entities.MedicalOrder) (uint64, error)
	FindByID(ctx context.Context, q Querier, id uint64) (*entities.MedicalOrder, error)
	ListByPatient(ctx context.Context, patientID uint64) ([]entities.MedicalOrder, error)
	Update(ctx context.Context, id uint64, o *entities.MedicalOrder) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error
	Delete(ctx context.Context, id uint64) error
}

type medicalOrderRepository struct {
	storage *pgxpool.Pool
}

func NewMedicalOrderRepository(storage *pgxpool.Pool) MedicalOrderRepositoryInterface {
	return &medicalOrderRepository{storage: storage}
}

func scanMedicalOrder(row pgx.Row) (*entities.MedicalOrder, error) {
	var o entities.MedicalOrder
	err := row.Scan(&o.ID, &o.PatientID, &o.OrderingDoctor, &o.Investigations,
		&o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования medical_orders: %w", err)
	}
	return &o, nil
}

func (r *medicalOrderRepository) Create(ctx context.Context, tx pgx.Tx, o *entities.MedicalOrder) (uint64, error) {
	query := `
		INSERT INTO medical_orders (patient_id, ordering_doctor, investigations, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var id uint64
	err := tx.QueryRow(ctx, query,
		o.PatientID, o.OrderingDoctor, o.Investigations, o.Status, o.Notes,
	).Scan(&id)
	return id, err
}

func (r *medicalOrderRepository) FindByID(ctx context.Context, q Querier, id uint64) (*entities.MedicalOrder, error) {
	if q == nil {
		q = r.storage
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", medicalOrderFields, medicalOrderTable)
	return scanMedicalOrder(q.QueryRow(ctx, query, id))
}

func (r *medicalOrderRepository) ListByPatient(ctx context.Context, patientID uint64) ([]entities.MedicalOrder, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE patient_id = $1 ORDER BY created_at DESC", medicalOrderFields, medicalOrderTable)
	rows, err := r.storage.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entities.MedicalOrder
	for rows.Next() {
		var o entities.MedicalOrder
		if err := rows.Scan(&o.ID, &o.PatientID, &o.OrderingDoctor, &o.Investigations,
			&o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *medicalOrderRepository) Update(ctx context.Context, id uint64, o *entities.MedicalOrder) error {
	query := `
		UPDATE medical_orders
		SET ordering_doctor = $1, investigations = $2, notes = $3, updated_at = NOW()
		WHERE id = $4`
	result, err := r.storage.Exec(ctx, query, o.OrderingDoctor, o.Investigations, o.Notes, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrOrderNotFound
	}
	return nil
}

// UpdateStatus выполняется в транзакции регистрации вложения: загрузка
// отчёта и перевод назначения в completed коммитятся вместе.
func (r *medicalOrderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	result, err := tx.Exec(ctx,
		"UPDATE medical_orders SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrOrderNotFound
	}
	return nil
}

func (r *medicalOrderRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM medical_orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrOrderNotFound
	}
	return nil
}
