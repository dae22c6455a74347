package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "clinic-system/pkg/errors"

	"github.com/google/uuid"
)

// FileStorageInterface — контракт байтового хранилища вложений.
// Все пути относительны одного корня; абсолютные пути и выход
// из корня через ".." отклоняются до любого обращения к диску.
type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string, ownerRef string) (filePath string, err error)
	Open(filePath string) (io.ReadCloser, error)
	Delete(filePath string) error
}

type LocalFileStorage struct {
	basePath  string
	sanitizer *Sanitizer
}

func NewLocalFileStorage(basePath string) (*LocalFileStorage, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию хранилища: %w", err)
		}
	}
	return &LocalFileStorage{basePath: basePath, sanitizer: NewDefaultSanitizer()}, nil
}

// validateRelPath отклоняет абсолютные пути и сегменты "..".
func validateRelPath(p string) error {
	if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return apperrors.ErrInvalidPath
	}
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		if seg == ".." {
			return apperrors.ErrInvalidPath
		}
	}
	return nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string, ownerRef string) (string, error) {
	if err := validateRelPath(prefix); err != nil {
		return "", err
	}
	if err := validateRelPath(ownerRef); err != nil {
		return "", err
	}

	// Уникальное имя: дата плюс uuid, чтобы файлы с одинаковым логическим
	// именем не затирали друг друга.
	ext := strings.ToLower(filepath.Ext(originalFileName))
	uniqueFileName := fmt.Sprintf("%s-%s%s", time.Now().Format("2006-01-02"), uuid.New().String(), ext)

	datePath := time.Now().Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, prefix, ownerRef, datePath)

	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrStorageWrite, err)
	}

	dst, err := os.Create(filepath.Join(fullDirPath, uniqueFileName))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrStorageWrite, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		// Частично записанный файл не оставляем.
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("%w: %v", apperrors.ErrStorageWrite, err)
	}

	return filepath.ToSlash(filepath.Join(prefix, ownerRef, datePath, uniqueFileName)), nil
}

func (s *LocalFileStorage) Open(filePath string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(filePath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageRead, err)
	}
	return f, nil
}

// Delete идемпотентен: отсутствие файла — не ошибка.
func (s *LocalFileStorage) Delete(filePath string) error {
	fullPath, err := s.resolve(filePath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(fullPath)
}

// resolve нормализует сохранённый путь (старые записи могут содержать
// продублированный корень) и строит полный путь на диске.
func (s *LocalFileStorage) resolve(filePath string) (string, error) {
	cleaned := s.sanitizer.Sanitize(strings.TrimPrefix(filePath, "/"))
	if err := validateRelPath(cleaned); err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, filepath.FromSlash(cleaned)), nil
}
