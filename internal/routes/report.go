package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/controllers"
	"clinic-system/internal/services"
)

func runReportRouter(g *echo.Group, reportService services.ReportServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewReportController(reportService, logger)

	g.GET("/reports/categories", ctrl.GetCategoryStats)
	g.GET("/reports/attachments", ctrl.GetAttachmentReport)
}
