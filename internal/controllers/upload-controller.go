package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/dto"
	"clinic-system/internal/services"
	apperrors "clinic-system/pkg/errors"
	"clinic-system/pkg/utils"
)

// UploadController принимает multipart-загрузки клинических вложений.
// Категория задаётся в пути, файлы — в поле "files" (можно несколько).
type UploadController struct {
	attachmentService services.AttachmentServiceInterface
	logger            *zap.Logger
}

func NewUploadController(attachmentService services.AttachmentServiceInterface, logger *zap.Logger) *UploadController {
	return &UploadController{attachmentService: attachmentService, logger: logger}
}

func (c *UploadController) Upload(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	category := ctx.Param("category")

	var payload dto.UploadAttachmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Запрос должен быть multipart/form-data"), c.logger)
	}
	files := form.File["files"]

	res, err := c.attachmentService.Upload(reqCtx, category, payload, files)
	if err != nil {
		c.logger.Error("Ошибка при загрузке вложений",
			zap.Error(err),
			zap.String("category", category),
			zap.String("owner_ref", payload.OwnerRef),
			zap.Int("files", len(files)),
		)
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Файлы успешно загружены", http.StatusCreated)
}
