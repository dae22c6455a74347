package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clinic-system/internal/entities"
	appdb "clinic-system/internal/infrastructure/bd"
	apperrors "clinic-system/pkg/errors"
	"clinic-system/pkg/types"
)

const (
	patientTable  = "patients"
	patientFields = "id, clinic_ref, full_name, date_of_birth, gender, phone, address, created_at, updated_at"
)

// allowedPatientFilters - белый список для фильтрации (защита от SQL Injection)
var allowedPatientFilters = map[string]string{
	"clinic_ref": "clinic_ref",
	"gender":     "gender",
}

type PatientRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, p *entities.Patient) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Patient, error)
	FindByClinicRef(ctx context.Context, q Querier, clinicRef string) (*entities.Patient, error)
	GetAll(ctx context.Context, filter types.Filter) ([]entities.Patient, uint64, error)
	Update(ctx context.Context, id uint64, p *entities.Patient) error
	NextClinicRefSeq(ctx context.Context, tx pgx.Tx) (uint64, error)
}

type patientRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPatientRepository(storage *pgxpool.Pool, logger *zap.Logger) PatientRepositoryInterface {
	return &patientRepository{storage: storage, logger: logger}
}

func (r *patientRepository) scanRow(row pgx.Row) (*entities.Patient, error) {
	var p entities.Patient
	err := row.Scan(
		&p.ID, &p.ClinicRef, &p.FullName, &p.DateOfBirth, &p.Gender,
		&p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPatientNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования patients: %w", err)
	}
	return &p, nil
}

func (r *patientRepository) Create(ctx context.Context, tx pgx.Tx, p *entities.Patient) (uint64, error) {
	query := `
		INSERT INTO patients (clinic_ref, full_name, date_of_birth, gender, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id uint64
	err := tx.QueryRow(ctx, query,
		p.ClinicRef, p.FullName, p.DateOfBirth, p.Gender, p.Phone, p.Address,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 - нарушение уникальности clinic_ref
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.ErrDuplicateClinicRef
		}
		return 0, err
	}
	return id, nil
}

func (r *patientRepository) FindByID(ctx context.Context, id uint64) (*entities.Patient, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", patientFields, patientTable)
	return r.scanRow(r.storage.QueryRow(ctx, query, id))
}

func (r *patientRepository) FindByClinicRef(ctx context.Context, q Querier, clinicRef string) (*entities.Patient, error) {
	if q == nil {
		q = r.storage
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE clinic_ref = $1", patientFields, patientTable)
	return r.scanRow(q.QueryRow(ctx, query, clinicRef))
}

func (r *patientRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.Patient, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Select(patientFields).From(patientTable)
	countBuilder := psql.Select("COUNT(*)").From(patientTable)

	if filter.Search != "" {
		like := sq.ILike{"full_name": "%" + strings.TrimSpace(filter.Search) + "%"}
		builder = builder.Where(like)
		countBuilder = countBuilder.Where(like)
	}

	builder = appdb.ApplyListParams(builder, filter, allowedPatientFilters)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("created_at DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки SQL для списка пациентов: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []entities.Patient
	for rows.Next() {
		var p entities.Patient
		if err := rows.Scan(&p.ID, &p.ClinicRef, &p.FullName, &p.DateOfBirth, &p.Gender,
			&p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}

func (r *patientRepository) Update(ctx context.Context, id uint64, p *entities.Patient) error {
	query := `
		UPDATE patients
		SET full_name = $1, phone = $2, address = $3, updated_at = NOW()
		WHERE id = $4`
	result, err := r.storage.Exec(ctx, query, p.FullName, p.Phone, p.Address, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPatientNotFound
	}
	return nil
}

// NextClinicRefSeq выдаёт следующий номер последовательности для CRN.
func (r *patientRepository) NextClinicRefSeq(ctx context.Context, tx pgx.Tx) (uint64, error) {
	var seq uint64
	if err := tx.QueryRow(ctx, "SELECT nextval('clinic_ref_seq')").Scan(&seq); err != nil {
		return 0, fmt.Errorf("не удалось получить номер clinic_ref: %w", err)
	}
	return seq, nil
}
