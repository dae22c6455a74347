package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/controllers"
	"clinic-system/internal/services"
)

func runPatientRouter(g *echo.Group, patientService services.PatientServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewPatientController(patientService, logger)

	g.GET("/patients", ctrl.GetPatients)
	g.GET("/patients/:id", ctrl.FindPatient)
	g.GET("/patients/by-ref/:clinic_ref", ctrl.FindPatientByClinicRef)
	g.POST("/patients", ctrl.CreatePatient)
	g.PUT("/patients/:id", ctrl.UpdatePatient)
}
