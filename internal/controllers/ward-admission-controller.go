package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/dto"
	"clinic-system/internal/services"
	apperrors "clinic-system/pkg/errors"
	"clinic-system/pkg/utils"
)

// WardAdmissionController оформляет госпитализации. Снимки пациента
// (минимум два) приходят в поле "images" того же multipart-запроса.
type WardAdmissionController struct {
	admissionService services.WardAdmissionServiceInterface
	logger           *zap.Logger
}

func NewWardAdmissionController(admissionService services.WardAdmissionServiceInterface, logger *zap.Logger) *WardAdmissionController {
	return &WardAdmissionController{admissionService: admissionService, logger: logger}
}

func (c *WardAdmissionController) CreateAdmission(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateWardAdmissionDTO
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
	images := form.File["images"]

	res, err := c.admissionService.Admit(reqCtx, payload, images)
	if err != nil {
		c.logger.Error("Ошибка при оформлении госпитализации",
			zap.Error(err),
			zap.String("owner_ref", payload.OwnerRef),
			zap.Int("images", len(images)),
		)
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Госпитализация успешно оформлена", http.StatusCreated)
}

func (c *WardAdmissionController) FindAdmission(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Некорректный ID госпитализации"), c.logger)
	}

	res, err := c.admissionService.GetByID(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при поиске госпитализации", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Госпитализация успешно найдена", http.StatusOK)
}

func (c *WardAdmissionController) GetAdmissions(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	ownerRef := ctx.QueryParam("owner_ref")
	if ownerRef == "" {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Параметр owner_ref обязателен"), c.logger)
	}

	res, err := c.admissionService.ListByOwner(reqCtx, ownerRef)
	if err != nil {
		c.logger.Error("Ошибка при получении списка госпитализаций",
			zap.Error(err), zap.String("owner_ref", ownerRef))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список госпитализаций успешно получен", http.StatusOK)
}
