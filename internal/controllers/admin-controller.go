package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/services"
	"clinic-system/pkg/utils"
)

// AdminController — служебные операции: починка путей вложений,
// оставшихся от старых версий системы.
type AdminController struct {
	repairService services.RepairServiceInterface
	logger        *zap.Logger
}

func NewAdminController(repairService services.RepairServiceInterface, logger *zap.Logger) *AdminController {
	return &AdminController{repairService: repairService, logger: logger}
}

func (c *AdminController) RepairPaths(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.repairService.RepairPaths(reqCtx)
	if err != nil {
		c.logger.Error("Ошибка при починке путей вложений", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Проверка путей завершена", http.StatusOK)
}
