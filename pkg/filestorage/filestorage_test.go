package filestorage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "clinic-system/pkg/errors"
)

func newTestStorage(t *testing.T) *LocalFileStorage {
	t.Helper()
	storage, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)
	return storage
}

func TestLocalFileStorage_SaveAndOpen(t *testing.T) {
	storage := newTestStorage(t)
	content := []byte("%PDF-1.4 тестовый отчёт")

	path, err := storage.Save(bytes.NewReader(content), "report.PDF", "reports", "CRN-000001")
	require.NoError(t, err)

	// Путь: prefix/ownerRef/ГГГГ/ММ/ДД/дата-uuid.расширение, слэши прямые.
	datePart := time.Now().Format("2006/01/02")
	pattern := fmt.Sprintf(`^reports/CRN-000001/%s/\d{4}-\d{2}-\d{2}-[0-9a-f-]{36}\.pdf$`, datePart)
	assert.Regexp(t, regexp.MustCompile(pattern), path)
	assert.False(t, strings.Contains(path, "\\"))

	rc, err := storage.Open(path)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocalFileStorage_SaveUniqueNames(t *testing.T) {
	storage := newTestStorage(t)

	first, err := storage.Save(bytes.NewReader([]byte("a")), "scan.png", "admissions", "CRN-000002")
	require.NoError(t, err)
	second, err := storage.Save(bytes.NewReader([]byte("b")), "scan.png", "admissions", "CRN-000002")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalFileStorage_RejectsTraversal(t *testing.T) {
	storage := newTestStorage(t)

	testCases := []struct {
		name     string
		prefix   string
		ownerRef string
	}{
		{"точки в префиксе", "../etc", "CRN-000001"},
		{"точки в номере пациента", "reports", "../../secrets"},
		{"абсолютный префикс", "/etc", "CRN-000001"},
		{"пустой префикс", "", "CRN-000001"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := storage.Save(bytes.NewReader([]byte("x")), "f.pdf", tc.prefix, tc.ownerRef)
			assert.ErrorIs(t, err, apperrors.ErrInvalidPath)
		})
	}
}

func TestLocalFileStorage_OpenRejectsTraversal(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.Open("../outside/file.pdf")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPath)

	_, err = storage.Open("reports/../../outside.pdf")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPath)
}

func TestLocalFileStorage_OpenMissingFile(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.Open("reports/CRN-000001/2025/01/01/nope.pdf")
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

func TestLocalFileStorage_DeleteIdempotent(t *testing.T) {
	storage := newTestStorage(t)

	path, err := storage.Save(bytes.NewReader([]byte("data")), "f.png", "admissions", "CRN-000003")
	require.NoError(t, err)

	require.NoError(t, storage.Delete(path))
	// Повторное удаление того же пути — не ошибка.
	assert.NoError(t, storage.Delete(path))

	_, err = storage.Open(path)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

// Старые записи реестра могут содержать путь с продублированным корнем.
// Хранилище обязано открывать их так же, как канонические.
func TestLocalFileStorage_ResolvesLegacyPaths(t *testing.T) {
	storage := newTestStorage(t)

	path, err := storage.Save(bytes.NewReader([]byte("legacy")), "old.pdf", "reports", "CRN-000004")
	require.NoError(t, err)

	// Старые записи встречаются и с одинарным, и с продублированным корнем.
	for _, legacy := range []string{"uploads/" + path, "uploads/uploads/" + path} {
		rc, err := storage.Open(legacy)
		require.NoError(t, err)

		got, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		assert.Equal(t, []byte("legacy"), got)
	}
}

func TestLocalFileStorage_CreatesBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewLocalFileStorage(base)
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
