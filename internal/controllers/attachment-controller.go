package controllers

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/services"
	apperrors "clinic-system/pkg/errors"
	"clinic-system/pkg/utils"
)

type AttachmentController struct {
	attachmentService services.AttachmentServiceInterface
	logger            *zap.Logger
}

func NewAttachmentController(attachmentService services.AttachmentServiceInterface, logger *zap.Logger) *AttachmentController {
	return &AttachmentController{attachmentService: attachmentService, logger: logger}
}

// GetAttachments отдаёт вложения пациента, новые первыми.
// Фильтры category и status необязательны.
func (c *AttachmentController) GetAttachments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	ownerRef := ctx.QueryParam("owner_ref")
	if ownerRef == "" {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Параметр owner_ref обязателен"), c.logger)
	}

	res, err := c.attachmentService.ListByOwner(reqCtx, ownerRef,
		ctx.QueryParam("category"), ctx.QueryParam("status"))
	if err != nil {
		c.logger.Error("Ошибка при получении списка вложений",
			zap.Error(err), zap.String("owner_ref", ownerRef))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список вложений успешно получен", http.StatusOK)
}

func (c *AttachmentController) DownloadAttachment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Некорректный ID вложения"), c.logger)
	}

	rc, attachment, contentType, err := c.attachmentService.Download(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при скачивании вложения", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer rc.Close()

	// Имя файла пришло от пользователя, экранируем его для заголовка.
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": attachment.OriginalFileName}))
	return ctx.Stream(http.StatusOK, contentType, rc)
}

func (c *AttachmentController) DeleteAttachment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Некорректный ID вложения"), c.logger)
	}

	res, err := c.attachmentService.Delete(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при удалении вложения", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	message := "Вложение успешно удалено"
	if res.Warning != "" {
		message = res.Warning
	}
	return utils.SuccessResponse(ctx, res, message, http.StatusOK)
}
