package services

import (
	"context"

	"go.uber.org/zap"

	"clinic-system/internal/dto"
	"clinic-system/internal/entities"
	"clinic-system/internal/repositories"
)

type SurgeryServiceInterface interface {
	Schedule(ctx context.Context, payload dto.CreateSurgeryDTO) (*dto.SurgeryDTO, error)
	GetByID(ctx context.Context, id uint64) (*dto.SurgeryDTO, error)
	// ListSchedule отдаёт график операций; patientID = 0 — весь график.
	ListSchedule(ctx context.Context, patientID uint64) ([]dto.SurgeryDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateSurgeryDTO) (*dto.SurgeryDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type surgeryService struct {
	surgeryRepo repositories.SurgeryRepositoryInterface
	patientRepo repositories.PatientRepositoryInterface
	logger      *zap.Logger
}

func NewSurgeryService(
	surgeryRepo repositories.SurgeryRepositoryInterface,
	patientRepo repositories.PatientRepositoryInterface,
	logger *zap.Logger,
) SurgeryServiceInterface {
	return &surgeryService{surgeryRepo: surgeryRepo, patientRepo: patientRepo, logger: logger}
}

func (s *surgeryService) Schedule(ctx context.Context, payload dto.CreateSurgeryDTO) (*dto.SurgeryDTO, error) {
	patient, err := s.patientRepo.FindByClinicRef(ctx, nil, payload.OwnerRef)
	if err != nil {
		return nil, err
	}

	surgery := entities.Surgery{
		PatientID:   patient.ID,
		Theatre:     payload.Theatre,
		SurgeryDate: payload.SurgeryDate,
		TimeSlot:    payload.TimeSlot,
		Procedure:   payload.Procedure,
		Status:      entities.SurgeryStatusScheduled,
	}
	if _, err := s.surgeryRepo.Create(ctx, &surgery); err != nil {
		return nil, err
	}

	s.logger.Info("операция поставлена в график",
		zap.Uint64("surgery_id", surgery.ID),
		zap.String("theatre", surgery.Theatre),
		zap.String("time_slot", surgery.TimeSlot),
	)

	result := toSurgeryDTO(surgery)
	return &result, nil
}

func (s *surgeryService) GetByID(ctx context.Context, id uint64) (*dto.SurgeryDTO, error) {
	surgery, err := s.surgeryRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	result := toSurgeryDTO(*surgery)
	return &result, nil
}

func (s *surgeryService) ListSchedule(ctx context.Context, patientID uint64) ([]dto.SurgeryDTO, error) {
	surgeries, err := s.surgeryRepo.ListSchedule(ctx, patientID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.SurgeryDTO, 0, len(surgeries))
	for _, surgery := range surgeries {
		result = append(result, toSurgeryDTO(surgery))
	}
	return result, nil
}

func (s *surgeryService) Update(ctx context.Context, id uint64, payload dto.UpdateSurgeryDTO) (*dto.SurgeryDTO, error) {
	existing, err := s.surgeryRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	if payload.Theatre.Valid {
		existing.Theatre = payload.Theatre.String
	}
	if payload.SurgeryDate.Valid {
		existing.SurgeryDate = payload.SurgeryDate.Time
	}
	if payload.TimeSlot.Valid {
		existing.TimeSlot = payload.TimeSlot.String
	}
	if payload.Status.Valid {
		existing.Status = payload.Status.String
	}

	if err := s.surgeryRepo.Update(ctx, id, existing); err != nil {
		return nil, err
	}

	updated, err := s.surgeryRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	result := toSurgeryDTO(*updated)
	return &result, nil
}

func (s *surgeryService) Delete(ctx context.Context, id uint64) error {
	return s.surgeryRepo.Delete(ctx, id)
}

func toSurgeryDTO(s entities.Surgery) dto.SurgeryDTO {
	return dto.SurgeryDTO{
		ID:          s.ID,
		PatientID:   s.PatientID,
		Theatre:     s.Theatre,
		SurgeryDate: s.SurgeryDate,
		TimeSlot:    s.TimeSlot,
		Procedure:   s.Procedure,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
	}
}
