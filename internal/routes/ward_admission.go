package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/controllers"
	"clinic-system/internal/services"
)

func runWardAdmissionRouter(g *echo.Group, admissionService services.WardAdmissionServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewWardAdmissionController(admissionService, logger)

	g.GET("/admissions", ctrl.GetAdmissions)
	g.GET("/admissions/:id", ctrl.FindAdmission)
	g.POST("/admissions", ctrl.CreateAdmission)
}
