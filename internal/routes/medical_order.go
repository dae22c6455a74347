package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/controllers"
	"clinic-system/internal/services"
)

func runMedicalOrderRouter(g *echo.Group, orderService services.MedicalOrderServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewMedicalOrderController(orderService, logger)

	g.GET("/orders", ctrl.GetOrders)
	g.GET("/orders/:id", ctrl.FindOrder)
	g.POST("/orders", ctrl.CreateOrder)
	g.PUT("/orders/:id", ctrl.UpdateOrder)
	g.DELETE("/orders/:id", ctrl.DeleteOrder)
}
