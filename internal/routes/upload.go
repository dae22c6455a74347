package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/controllers"
	"clinic-system/internal/services"
)

func runUploadRouter(g *echo.Group, attachmentService services.AttachmentServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewUploadController(attachmentService, logger)

	g.POST("/uploads/:category", ctrl.Upload)
}
