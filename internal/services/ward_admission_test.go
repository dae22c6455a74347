package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinic-system/internal/dto"
	"clinic-system/internal/entities"
	"clinic-system/internal/repositories"
	apperrors "clinic-system/pkg/errors"
	"clinic-system/pkg/eventbus"
)

type fakeAdmissionRepo struct {
	admissions []entities.WardAdmission
	failCreate bool
}

func (r *fakeAdmissionRepo) Create(ctx context.Context, tx pgx.Tx, w *entities.WardAdmission) (uint64, error) {
	if r.failCreate {
		return 0, errAdmissionInsert
	}
	w.ID = uint64(len(r.admissions) + 1)
	r.admissions = append(r.admissions, *w)
	return w.ID, nil
}

func (r *fakeAdmissionRepo) FindByID(ctx context.Context, id uint64) (*entities.WardAdmission, error) {
	for i := range r.admissions {
		if r.admissions[i].ID == id {
			w := r.admissions[i]
			return &w, nil
		}
	}
	return nil, apperrors.ErrAdmissionNotFound
}

func (r *fakeAdmissionRepo) ListByPatient(ctx context.Context, patientID uint64) ([]entities.WardAdmission, error) {
	var out []entities.WardAdmission
	for _, w := range r.admissions {
		if w.PatientID == patientID {
			out = append(out, w)
		}
	}
	return out, nil
}

var errAdmissionInsert = errors.New("ошибка вставки ward_admissions")

var _ repositories.WardAdmissionRepositoryInterface = (*fakeAdmissionRepo)(nil)

type admissionFixture struct {
	service     WardAdmissionServiceInterface
	storage     *fakeFileStorage
	attachments *fakeAttachmentRepo
	admissions  *fakeAdmissionRepo
}

func newAdmissionFixture(refs ...string) *admissionFixture {
	f := &admissionFixture{
		storage:     &fakeFileStorage{},
		attachments: &fakeAttachmentRepo{},
		admissions:  &fakeAdmissionRepo{},
	}
	patients := newFakePatientRepo(refs...)
	pipeline := NewUploadPipeline(
		f.storage, f.attachments, patients, &fakeTxManager{}, &fakeNotifier{},
		eventbus.New(zap.NewNop()), zap.NewNop())
	f.service = NewWardAdmissionService(f.admissions, patients, pipeline, zap.NewNop())
	return f
}

func admissionPayload() dto.CreateWardAdmissionDTO {
	return dto.CreateWardAdmissionDTO{
		OwnerRef:   "CRN-000001",
		Ward:       "Хирургия-2",
		Bed:        "12А",
		Diagnosis:  "Острый аппендицит",
		AdmittedAt: time.Now(),
	}
}

func TestWardAdmissionService_Admit(t *testing.T) {
	f := newAdmissionFixture("CRN-000001")

	res, err := f.service.Admit(context.Background(), admissionPayload(), makeFileHeaders(t,
		testFile{name: "front.png", content: pngContent},
		testFile{name: "side.png", content: pngContent},
	))
	require.NoError(t, err)

	assert.Equal(t, "Хирургия-2", res.Ward)
	require.Len(t, res.Images, 2)
	require.Len(t, f.admissions.admissions, 1)

	// Оба снимка ссылаются на созданную госпитализацию.
	for _, a := range f.attachments.attachments {
		require.NotNil(t, a.AdmissionID)
		assert.Equal(t, res.ID, *a.AdmissionID)
	}
}

// Один снимок — отказ: ни записи о госпитализации, ни файлов.
func TestWardAdmissionService_AdmitRequiresTwoImages(t *testing.T) {
	f := newAdmissionFixture("CRN-000001")

	_, err := f.service.Admit(context.Background(), admissionPayload(), makeFileHeaders(t,
		testFile{name: "front.png", content: pngContent},
	))
	assert.ErrorIs(t, err, apperrors.ErrNotEnoughFiles)
	assert.Empty(t, f.admissions.admissions)
	assert.Zero(t, f.storage.saveCalls)
}

// Сбой создания записи о госпитализации вычищает уже записанные снимки.
func TestWardAdmissionService_AdmitRollsBackImages(t *testing.T) {
	f := newAdmissionFixture("CRN-000001")
	f.admissions.failCreate = true

	_, err := f.service.Admit(context.Background(), admissionPayload(), makeFileHeaders(t,
		testFile{name: "front.png", content: pngContent},
		testFile{name: "side.png", content: pngContent},
	))
	require.Error(t, err)
	assert.Empty(t, f.attachments.attachments)
	assert.ElementsMatch(t, f.storage.saved, f.storage.deleted)
}

func TestWardAdmissionService_AdmitUnknownPatient(t *testing.T) {
	f := newAdmissionFixture()

	payload := admissionPayload()
	payload.OwnerRef = "CRN-999999"
	_, err := f.service.Admit(context.Background(), payload, makeFileHeaders(t,
		testFile{name: "front.png", content: pngContent},
		testFile{name: "side.png", content: pngContent},
	))
	assert.ErrorIs(t, err, apperrors.ErrPatientNotFound)
	assert.Zero(t, f.storage.saveCalls)
}
