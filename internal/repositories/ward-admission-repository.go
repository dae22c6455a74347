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
	wardAdmissionTable  = "ward_admissions"
	wardAdmissionFields = "id, patient_id, ward, bed, diagnosis, admitted_at, created_at"
)

type WardAdmissionRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, w *entities.WardAdmission) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.WardAdmission, error)
	ListByPatient(ctx context.Context, patientID uint64) ([]entities.WardAdmission, error)
}

type wardAdmissionRepository struct {
	storage *pgxpool.Pool
}

func NewWardAdmissionRepository(storage *pgxpool.Pool) WardAdmissionRepositoryInterface {
	return &wardAdmissionRepository{storage: storage}
}

func (r *wardAdmissionRepository) Create(ctx context.Context, tx pgx.Tx, w *entities.WardAdmission) (uint64, error) {
	query := `
		INSERT INTO ward_admissions (patient_id, ward, bed, diagnosis, admitted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := tx.QueryRow(ctx, query,
		w.PatientID, w.Ward, w.Bed, w.Diagnosis, w.AdmittedAt,
	).Scan(&w.ID, &w.CreatedAt)
	return w.ID, err
}

func (r *wardAdmissionRepository) FindByID(ctx context.Context, id uint64) (*entities.WardAdmission, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", wardAdmissionFields, wardAdmissionTable)
	var w entities.WardAdmission
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.PatientID, &w.Ward, &w.Bed, &w.Diagnosis, &w.AdmittedAt, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdmissionNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования ward_admissions: %w", err)
	}
	return &w, nil
}

func (r *wardAdmissionRepository) ListByPatient(ctx context.Context, patientID uint64) ([]entities.WardAdmission, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE patient_id = $1 ORDER BY admitted_at DESC", wardAdmissionFields, wardAdmissionTable)
	rows, err := r.storage.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admissions []entities.WardAdmission
	for rows.Next() {
		var w entities.WardAdmission
		if err := rows.Scan(&w.ID, &w.PatientID, &w.Ward, &w.Bed, &w.Diagnosis, &w.AdmittedAt, &w.CreatedAt); err != nil {
			return nil, err
		}
		admissions = append(admissions, w)
	}
	return admissions, rows.Err()
}
