package controllers

import (
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinic-system/internal/entities"
)

func doDownload(t *testing.T, svc *fakeAttachmentService, id string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	ctrl := NewAttachmentController(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/attachments/"+id+"/download", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/attachments/:id/download")
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, ctrl.DownloadAttachment(c))
	return rec
}

func TestAttachmentController_Download(t *testing.T) {
	svc := &fakeAttachmentService{
		downloadAttachment: &entities.Attachment{ID: 1, OriginalFileName: "отчёт.pdf"},
		downloadBody:       "%PDF-1.4",
	}

	rec := doDownload(t, svc, "1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
	assert.Equal(t,
		mime.FormatMediaType("attachment", map[string]string{"filename": "отчёт.pdf"}),
		rec.Header().Get(echo.HeaderContentDisposition))
}

// Имя файла приходит от пользователя: кавычки и переводы строк не должны
// попадать в заголовок как есть.
func TestAttachmentController_DownloadEscapesFileName(t *testing.T) {
	testCases := []struct {
		name     string
		fileName string
	}{
		{"кавычка в имени", `от"чёт.pdf`},
		{"перевод строки в имени", "отчёт\r\nSet-Cookie: x=1.pdf"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeAttachmentService{
				downloadAttachment: &entities.Attachment{ID: 1, OriginalFileName: tc.fileName},
				downloadBody:       "%PDF-1.4",
			}

			rec := doDownload(t, svc, "1")

			disposition := rec.Header().Get(echo.HeaderContentDisposition)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, strings.HasPrefix(disposition, "attachment"))
			assert.NotContains(t, disposition, "\r")
			assert.NotContains(t, disposition, "\n")
			assert.NotContains(t, disposition, `filename="`+tc.fileName+`"`)
		})
	}
}

func TestAttachmentController_DownloadMissing(t *testing.T) {
	rec := doDownload(t, &fakeAttachmentService{}, "777")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
