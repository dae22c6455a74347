package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/controllers"
	"clinic-system/internal/services"
)

func runSurgeryRouter(g *echo.Group, surgeryService services.SurgeryServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewSurgeryController(surgeryService, logger)

	g.GET("/surgeries", ctrl.GetSchedule)
	g.GET("/surgeries/:id", ctrl.FindSurgery)
	g.POST("/surgeries", ctrl.CreateSurgery)
	g.PUT("/surgeries/:id", ctrl.UpdateSurgery)
	g.DELETE("/surgeries/:id", ctrl.DeleteSurgery)
}
