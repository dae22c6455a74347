package services

import (
	"context"
	"mime/multipart"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"clinic-system/config"
	"clinic-system/internal/dto"
	"clinic-system/internal/entities"
	"clinic-system/internal/repositories"
)

type WardAdmissionServiceInterface interface {
	// Admit создаёт госпитализацию вместе со снимками. Либо коммитятся
	// запись и все снимки, либо ничего.
	Admit(ctx context.Context, payload dto.CreateWardAdmissionDTO, images []*multipart.FileHeader) (*dto.WardAdmissionDTO, error)
	GetByID(ctx context.Context, id uint64) (*dto.WardAdmissionDTO, error)
	ListByOwner(ctx context.Context, ownerRef string) ([]dto.WardAdmissionDTO, error)
}

type wardAdmissionService struct {
	admissionRepo repositories.WardAdmissionRepositoryInterface
	patientRepo   repositories.PatientRepositoryInterface
	pipeline      *UploadPipeline
	logger        *zap.Logger
}

func NewWardAdmissionService(
	admissionRepo repositories.WardAdmissionRepositoryInterface,
	patientRepo repositories.PatientRepositoryInterface,
	pipeline *UploadPipeline,
	logger *zap.Logger,
) WardAdmissionServiceInterface {
	return &wardAdmissionService{
		admissionRepo: admissionRepo,
		patientRepo:   patientRepo,
		pipeline:      pipeline,
		logger:        logger,
	}
}

func (s *wardAdmissionService) Admit(ctx context.Context, payload dto.CreateWardAdmissionDTO, images []*multipart.FileHeader) (*dto.WardAdmissionDTO, error) {
	patient, err := s.patientRepo.FindByClinicRef(ctx, nil, payload.OwnerRef)
	if err != nil {
		return nil, err
	}

	admission := entities.WardAdmission{
		PatientID:  patient.ID,
		Ward:       payload.Ward,
		Bed:        payload.Bed,
		Diagnosis:  payload.Diagnosis,
		AdmittedAt: payload.AdmittedAt,
	}

	created, err := s.pipeline.Run(ctx, UploadCommand{
		Category: config.CategoryWardAdmissionImage,
		OwnerRef: payload.OwnerRef,
		Files:    images,
		Status:   entities.AttachmentStatusCompleted,
		// Запись о госпитализации создаётся в транзакции конвейера:
		// снимки ссылаются на её id, сбой на любом шаге откатывает всё.
		PrepareTx: func(tx pgx.Tx) (uint64, error) {
			return s.admissionRepo.Create(ctx, tx, &admission)
		},
	})
	if err != nil {
		return nil, err
	}

	result := toWardAdmissionDTO(admission)
	result.Images = make([]dto.AttachmentDTO, 0, len(created))
	for _, a := range created {
		result.Images = append(result.Images, toAttachmentDTO(a))
	}

	s.logger.Info("оформлена госпитализация",
		zap.Uint64("admission_id", admission.ID),
		zap.String("owner_ref", payload.OwnerRef),
		zap.Int("images", len(created)),
	)
	return &result, nil
}

func (s *wardAdmissionService) GetByID(ctx context.Context, id uint64) (*dto.WardAdmissionDTO, error) {
	w, err := s.admissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toWardAdmissionDTO(*w)
	return &result, nil
}

func (s *wardAdmissionService) ListByOwner(ctx context.Context, ownerRef string) ([]dto.WardAdmissionDTO, error) {
	patient, err := s.patientRepo.FindByClinicRef(ctx, nil, ownerRef)
	if err != nil {
		return nil, err
	}

	admissions, err := s.admissionRepo.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.WardAdmissionDTO, 0, len(admissions))
	for _, w := range admissions {
		result = append(result, toWardAdmissionDTO(w))
	}
	return result, nil
}

func toWardAdmissionDTO(w entities.WardAdmission) dto.WardAdmissionDTO {
	return dto.WardAdmissionDTO{
		ID:         w.ID,
		PatientID:  w.PatientID,
		Ward:       w.Ward,
		Bed:        w.Bed,
		Diagnosis:  w.Diagnosis,
		AdmittedAt: w.AdmittedAt,
		CreatedAt:  w.CreatedAt,
	}
}
