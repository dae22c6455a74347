package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/controllers"
	"clinic-system/internal/services"
)

func runAdminRouter(g *echo.Group, repairService services.RepairServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewAdminController(repairService, logger)

	g.POST("/admin/repair-paths", ctrl.RepairPaths)
}
