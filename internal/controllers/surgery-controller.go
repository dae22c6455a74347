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

type SurgeryController struct {
	surgeryService services.SurgeryServiceInterface
	logger         *zap.Logger
}

func NewSurgeryController(surgeryService services.SurgeryServiceInterface, logger *zap.Logger) *SurgeryController {
	return &SurgeryController{surgeryService: surgeryService, logger: logger}
}

func (c *SurgeryController) GetSchedule(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var patientID uint64
	if raw := ctx.QueryParam("patient_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Некорректный ID пациента"), c.logger)
		}
		patientID = id
	}

	res, err := c.surgeryService.ListSchedule(reqCtx, patientID)
	if err != nil {
		c.logger.Error("Ошибка при получении графика операций", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "График операций успешно получен", http.StatusOK)
}

func (c *SurgeryController) FindSurgery(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Некорректный ID операции"), c.logger)
	}

	res, err := c.surgeryService.GetByID(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при поиске операции", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Операция успешно найдена", http.StatusOK)
}

func (c *SurgeryController) CreateSurgery(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateSurgeryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.surgeryService.Schedule(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при постановке операции в график", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Операция поставлена в график", http.StatusCreated)
}

func (c *SurgeryController) UpdateSurgery(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Некорректный ID операции"), c.logger)
	}

	var payload dto.UpdateSurgeryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.surgeryService.Update(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении операции", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Операция успешно обновлена", http.StatusOK)
}

func (c *SurgeryController) DeleteSurgery(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Некорректный ID операции"), c.logger)
	}

	if err := c.surgeryService.Delete(reqCtx, id); err != nil {
		c.logger.Error("Ошибка при удалении операции", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Операция успешно удалена", http.StatusOK)
}
