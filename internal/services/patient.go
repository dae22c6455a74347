package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"clinic-system/internal/dto"
	"clinic-system/internal/entities"
	"clinic-system/internal/repositories"
	"clinic-system/pkg/types"
)

type PatientServiceInterface interface {
	Register(ctx context.Context, payload dto.CreatePatientDTO) (*dto.PatientDTO, error)
	GetByID(ctx context.Context, id uint64) (*dto.PatientDTO, error)
	GetByClinicRef(ctx context.Context, clinicRef string) (*dto.PatientDTO, error)
	GetAll(ctx context.Context, filter types.Filter) ([]dto.PatientDTO, uint64, error)
	Update(ctx context.Context, id uint64, payload dto.UpdatePatientDTO) (*dto.PatientDTO, error)
}

type patientService struct {
	patientRepo repositories.PatientRepositoryInterface
	txManager   repositories.TxManagerInterface
	logger      *zap.Logger
}

func NewPatientService(
	patientRepo repositories.PatientRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) PatientServiceInterface {
	return &patientService{patientRepo: patientRepo, txManager: txManager, logger: logger}
}

// Register заводит карточку пациента. Клинический номер выдаётся из
// последовательности БД в той же транзакции, что и вставка карточки.
func (s *patientService) Register(ctx context.Context, payload dto.CreatePatientDTO) (*dto.PatientDTO, error) {
	p := entities.Patient{
		FullName:    payload.FullName,
		DateOfBirth: payload.DateOfBirth,
		Gender:      payload.Gender,
		Phone:       payload.Phone.Ptr(),
		Address:     payload.Address.Ptr(),
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		seq, err := s.patientRepo.NextClinicRefSeq(ctx, tx)
		if err != nil {
			return err
		}
		p.ClinicRef = fmt.Sprintf("CRN-%06d", seq)

		id, err := s.patientRepo.Create(ctx, tx, &p)
		if err != nil {
			return err
		}
		p.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("зарегистрирован пациент",
		zap.Uint64("patient_id", p.ID),
		zap.String("clinic_ref", p.ClinicRef),
	)

	created, err := s.patientRepo.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	result := toPatientDTO(*created)
	return &result, nil
}

func (s *patientService) GetByID(ctx context.Context, id uint64) (*dto.PatientDTO, error) {
	p, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toPatientDTO(*p)
	return &result, nil
}

func (s *patientService) GetByClinicRef(ctx context.Context, clinicRef string) (*dto.PatientDTO, error) {
	p, err := s.patientRepo.FindByClinicRef(ctx, nil, clinicRef)
	if err != nil {
		return nil, err
	}
	result := toPatientDTO(*p)
	return &result, nil
}

func (s *patientService) GetAll(ctx context.Context, filter types.Filter) ([]dto.PatientDTO, uint64, error) {
	patients, total, err := s.patientRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.PatientDTO, 0, len(patients))
	for _, p := range patients {
		result = append(result, toPatientDTO(p))
	}
	return result, total, nil
}

func (s *patientService) Update(ctx context.Context, id uint64, payload dto.UpdatePatientDTO) (*dto.PatientDTO, error) {
	existing, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.FullName.Valid {
		existing.FullName = payload.FullName.String
	}
	if payload.Phone.Valid {
		existing.Phone = payload.Phone.Ptr()
	}
	if payload.Address.Valid {
		existing.Address = payload.Address.Ptr()
	}

	if err := s.patientRepo.Update(ctx, id, existing); err != nil {
		return nil, err
	}

	updated, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toPatientDTO(*updated)
	return &result, nil
}

func toPatientDTO(p entities.Patient) dto.PatientDTO {
	return dto.PatientDTO{
		ID:          p.ID,
		ClinicRef:   p.ClinicRef,
		FullName:    p.FullName,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		Phone:       p.Phone,
		Address:     p.Address,
		CreatedAt:   p.CreatedAt,
	}
}
