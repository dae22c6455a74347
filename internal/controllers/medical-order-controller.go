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

type MedicalOrderController struct {
	orderService services.MedicalOrderServiceInterface
	logger       *zap.Logger
}

func NewMedicalOrderController(orderService services.MedicalOrderServiceInterface, logger *zap.Logger) *MedicalOrderController {
	return &MedicalOrderController{orderService: orderService, logger: logger}
}

func (c *MedicalOrderController) GetOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	ownerRef := ctx.QueryParam("owner_ref")
	if ownerRef == "" {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Параметр owner_ref обязателен"), c.logger)
	}

	res, err := c.orderService.ListByOwner(reqCtx, ownerRef)
	if err != nil {
		c.logger.Error("Ошибка при получении списка назначений",
			zap.Error(err), zap.String("owner_ref", ownerRef))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список назначений успешно получен", http.StatusOK)
}

func (c *MedicalOrderController) FindOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Некорректный ID назначения"), c.logger)
	}

	res, err := c.orderService.GetByID(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при поиске назначения", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Назначение успешно найдено", http.StatusOK)
}

func (c *MedicalOrderController) CreateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateMedicalOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.Create(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании назначения", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Назначение успешно создано", http.StatusCreated)
}

func (c *MedicalOrderController) UpdateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Некорректный ID назначения"), c.logger)
	}

	var payload dto.UpdateMedicalOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.Update(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении назначения", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Назначение успешно обновлено", http.StatusOK)
}

func (c *MedicalOrderController) DeleteOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Некорректный ID назначения"), c.logger)
	}

	if err := c.orderService.Delete(reqCtx, id); err != nil {
		c.logger.Error("Ошибка при удалении назначения", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Назначение успешно удалено", http.StatusOK)
}
