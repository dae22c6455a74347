package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"clinic-system/config"
	apperrors "clinic-system/pkg/errors"
)

// ValidateFile проверяет размер и MIME-тип файла до какой-либо записи на диск.
// category - ключ из config.UploadContexts.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, category string) error {
	rules, ok := config.UploadContexts[category]
	if !ok {
		return apperrors.ErrUnknownCategory
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return apperrors.NewInvalidInputError(
				"размер файла '%s' (%.2f MB) превышает лимит в %d MB",
				fileHeader.Filename, float64(fileHeader.Size)/1024/1024, rules.MaxSizeMB)
		}
	}

	// HEIC/HEIF не распознаётся http.DetectContentType, пропускаем по расширению
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if slices.Contains(rules.AllowedExtensions, ext) {
		return nil
	}

	// Проверка содержимого (magic numbers), а не расширения
	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil && err != io.EOF {
		return apperrors.NewInvalidInputError("не удалось прочитать файл '%s'", fileHeader.Filename)
	}

	// Важно: возвращаем курсор чтения в начало!
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("не удалось сбросить указатель файла: %w", err)
	}

	mimeType := http.DetectContentType(buffer)
	if i := strings.Index(mimeType, ";"); i > 0 {
		mimeType = mimeType[:i]
	}

	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return apperrors.NewInvalidInputError(
			"недопустимый формат файла '%s': %s", fileHeader.Filename, mimeType)
	}

	return nil
}
