package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/controllers"
	"clinic-system/internal/services"
)

func runAttachmentRouter(g *echo.Group, attachmentService services.AttachmentServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewAttachmentController(attachmentService, logger)

	g.GET("/attachments", ctrl.GetAttachments)
	g.GET("/attachments/:id/download", ctrl.DownloadAttachment)
	g.DELETE("/attachments/:id", ctrl.DeleteAttachment)
}
