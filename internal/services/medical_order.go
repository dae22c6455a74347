package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"clinic-system/internal/dto"
	"clinic-system/internal/entities"
	"clinic-system/internal/repositories"
)

type MedicalOrderServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateMedicalOrderDTO) (*dto.MedicalOrderDTO, error)
	GetByID(ctx context.Context, id uint64) (*dto.MedicalOrderDTO, error)
	ListByOwner(ctx context.Context, ownerRef string) ([]dto.MedicalOrderDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateMedicalOrderDTO) (*dto.MedicalOrderDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type medicalOrderService struct {
	orderRepo   repositories.MedicalOrderRepositoryInterface
	patientRepo repositories.PatientRepositoryInterface
	txManager   repositories.TxManagerInterface
	logger      *zap.Logger
}

func NewMedicalOrderService(
	orderRepo repositories.MedicalOrderRepositoryInterface,
	patientRepo repositories.PatientRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) MedicalOrderServiceInterface {
	return &medicalOrderService{
		orderRepo:   orderRepo,
		patientRepo: patientRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (s *medicalOrderService) Create(ctx context.Context, payload dto.CreateMedicalOrderDTO) (*dto.MedicalOrderDTO, error) {
	patient, err := s.patientRepo.FindByClinicRef(ctx, nil, payload.OwnerRef)
	if err != nil {
		return nil, err
	}

	o := entities.MedicalOrder{
		PatientID:      patient.ID,
		OrderingDoctor: payload.OrderingDoctor,
		Investigations: payload.Investigations,
		Status:         entities.OrderStatusPending,
		Notes:          payload.Notes.Ptr(),
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.orderRepo.Create(ctx, tx, &o)
		if err != nil {
			return err
		}
		o.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.orderRepo.FindByID(ctx, nil, o.ID)
	if err != nil {
		return nil, err
	}
	result := toMedicalOrderDTO(*created, payload.OwnerRef)
	return &result, nil
}

func (s *medicalOrderService) GetByID(ctx context.Context, id uint64) (*dto.MedicalOrderDTO, error) {
	o, err := s.orderRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	result := toMedicalOrderDTO(*o, "")
	return &result, nil
}

func (s *medicalOrderService) ListByOwner(ctx context.Context, ownerRef string) ([]dto.MedicalOrderDTO, error) {
	patient, err := s.patientRepo.FindByClinicRef(ctx, nil, ownerRef)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.MedicalOrderDTO, 0, len(orders))
	for _, o := range orders {
		result = append(result, toMedicalOrderDTO(o, ownerRef))
	}
	return result, nil
}

func (s *medicalOrderService) Update(ctx context.Context, id uint64, payload dto.UpdateMedicalOrderDTO) (*dto.MedicalOrderDTO, error) {
	existing, err := s.orderRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	if payload.OrderingDoctor.Valid {
		existing.OrderingDoctor = payload.OrderingDoctor.String
	}
	if payload.Investigations.Valid {
		existing.Investigations = payload.Investigations.String
	}
	if payload.Notes.Valid {
		existing.Notes = payload.Notes.Ptr()
	}

	if err := s.orderRepo.Update(ctx, id, existing); err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	result := toMedicalOrderDTO(*updated, "")
	return &result, nil
}

func (s *medicalOrderService) Delete(ctx context.Context, id uint64) error {
	return s.orderRepo.Delete(ctx, id)
}

func toMedicalOrderDTO(o entities.MedicalOrder, ownerRef string) dto.MedicalOrderDTO {
	return dto.MedicalOrderDTO{
		ID:             o.ID,
		PatientID:      o.PatientID,
		OwnerRef:       ownerRef,
		OrderingDoctor: o.OrderingDoctor,
		Investigations: o.Investigations,
		Status:         o.Status,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
	}
}
