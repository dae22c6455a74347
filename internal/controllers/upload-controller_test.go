package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinic-system/internal/dto"
	"clinic-system/internal/entities"
	apperrors "clinic-system/pkg/errors"
	"clinic-system/pkg/validation"
)

type fakeAttachmentService struct {
	uploaded  []dto.AttachmentDTO
	uploadErr error

	downloadAttachment *entities.Attachment
	downloadBody       string

	gotCategory string
	gotPayload  dto.UploadAttachmentDTO
	gotFiles    int
}

func (s *fakeAttachmentService) Upload(ctx context.Context, category string, payload dto.UploadAttachmentDTO, files []*multipart.FileHeader) ([]dto.AttachmentDTO, error) {
	s.gotCategory = category
	s.gotPayload = payload
	s.gotFiles = len(files)
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	return s.uploaded, nil
}

func (s *fakeAttachmentService) Delete(ctx context.Context, id uint64) (dto.DeleteAttachmentResultDTO, error) {
	return dto.DeleteAttachmentResultDTO{}, nil
}

func (s *fakeAttachmentService) ListByOwner(ctx context.Context, ownerRef, category, status string) ([]dto.AttachmentDTO, error) {
	return nil, nil
}

func (s *fakeAttachmentService) Download(ctx context.Context, id uint64) (io.ReadCloser, *entities.Attachment, string, error) {
	if s.downloadAttachment == nil {
		return nil, nil, "", apperrors.ErrAttachmentNotFound
	}
	return io.NopCloser(strings.NewReader(s.downloadBody)), s.downloadAttachment, "application/pdf", nil
}

func newUploadRequest(t *testing.T, ownerRef string, fileNames ...string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("owner_ref", ownerRef))
	for _, name := range fileNames {
		fw, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/patient_report", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func setupUploadTest(svc *fakeAttachmentService) (*echo.Echo, *UploadController) {
	e := echo.New()
	e.Validator = validation.New()
	return e, NewUploadController(svc, zap.NewNop())
}

func TestUploadController_Upload(t *testing.T) {
	svc := &fakeAttachmentService{
		uploaded: []dto.AttachmentDTO{{ID: 1, OwnerRef: "CRN-000001", FileName: "r.pdf"}},
	}
	e, ctrl := setupUploadTest(svc)

	req, rec := newUploadRequest(t, "CRN-000001", "r.pdf")
	c := e.NewContext(req, rec)
	c.SetPath("/api/uploads/:category")
	c.SetParamNames("category")
	c.SetParamValues("patient_report")

	require.NoError(t, ctrl.Upload(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "patient_report", svc.gotCategory)
	assert.Equal(t, "CRN-000001", svc.gotPayload.OwnerRef)
	assert.Equal(t, 1, svc.gotFiles)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["status"])
}

// owner_ref обязателен и должен иметь формат CRN-XXXXXX.
func TestUploadController_UploadRejectsBadOwnerRef(t *testing.T) {
	svc := &fakeAttachmentService{}
	e, ctrl := setupUploadTest(svc)

	req, rec := newUploadRequest(t, "не-номер", "r.pdf")
	c := e.NewContext(req, rec)
	c.SetPath("/api/uploads/:category")
	c.SetParamNames("category")
	c.SetParamValues("patient_report")

	require.NoError(t, ctrl.Upload(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, svc.gotFiles)
}

func TestUploadController_UploadMapsDomainErrors(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"неизвестная категория", apperrors.ErrUnknownCategory, http.StatusBadRequest},
		{"пациент не найден", apperrors.ErrPatientNotFound, http.StatusNotFound},
		{"мало файлов", apperrors.ErrNotEnoughFiles, http.StatusUnprocessableEntity},
		{"сбой хранилища", apperrors.ErrStorageWrite, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeAttachmentService{uploadErr: tc.err}
			e, ctrl := setupUploadTest(svc)

			req, rec := newUploadRequest(t, "CRN-000001", "r.pdf")
			c := e.NewContext(req, rec)
			c.SetPath("/api/uploads/:category")
			c.SetParamNames("category")
			c.SetParamValues("patient_report")

			require.NoError(t, ctrl.Upload(c))
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}
