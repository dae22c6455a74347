package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "clinic-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

// ErrorList - соответствие доменных ошибок HTTP-кодам.
var ErrorList = map[error]int{
	apperrors.ErrNotFound:           http.StatusNotFound,
	apperrors.ErrPatientNotFound:    http.StatusNotFound,
	apperrors.ErrOrderNotFound:      http.StatusNotFound,
	apperrors.ErrAdmissionNotFound:  http.StatusNotFound,
	apperrors.ErrAttachmentNotFound: http.StatusNotFound,
	apperrors.ErrFileNotFound:       http.StatusNotFound,
	apperrors.ErrBadRequest:         http.StatusBadRequest,
	apperrors.ErrInvalidPath:        http.StatusBadRequest,
	apperrors.ErrUnknownCategory:    http.StatusBadRequest,
	apperrors.ErrNotEnoughFiles:     http.StatusUnprocessableEntity,
	apperrors.ErrNoFilesProvided:    http.StatusUnprocessableEntity,
	apperrors.ErrDuplicateClinicRef: http.StatusUnprocessableEntity,
	apperrors.ErrSurgerySlotTaken:   http.StatusUnprocessableEntity,
	apperrors.ErrStorageWrite:       http.StatusInternalServerError,
	apperrors.ErrStorageRead:        http.StatusInternalServerError,
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

// ErrorResponse переводит ошибку в единый JSON-ответ.
// Клиент всегда получает одно человекочитаемое сообщение;
// технические детали остаются в логах.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("details", httpErr.Details),
			)
		}
		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"status":  false,
			"message": invalidInput.Message,
		})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"status":  false,
			"message": "Ошибка валидации: " + strings.Join(msgs, "; "),
		})
	}

	for sentinel, code := range ErrorList {
		if errors.Is(err, sentinel) {
			return c.JSON(code, map[string]interface{}{
				"status":  false,
				"message": sentinel.Error(),
			})
		}
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Внутренняя ошибка сервера",
	})
}
