package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/dto"
	"clinic-system/internal/services"
	apperrors "clinic-system/pkg/errors"
	"clinic-system/pkg/types"
	"clinic-system/pkg/utils"
)

type PatientController struct {
	patientService services.PatientServiceInterface
	logger         *zap.Logger
}

func NewPatientController(patientService services.PatientServiceInterface, logger *zap.Logger) *PatientController {
	return &PatientController{patientService: patientService, logger: logger}
}

func (c *PatientController) GetPatients(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	patients, total, err := c.patientService.GetAll(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка пациентов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	body := map[string]interface{}{
		"list": patients,
		"pagination": types.Pagination{
			TotalCount: total,
			Page:       filter.Page,
			Limit:      filter.Limit,
		},
	}
	return utils.SuccessResponse(ctx, body, "Список пациентов успешно получен", http.StatusOK)
}

func (c *PatientController) FindPatient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Некорректный ID пациента"), c.logger)
	}

	res, err := c.patientService.GetByID(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при поиске пациента", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Пациент успешно найден", http.StatusOK)
}

func (c *PatientController) FindPatientByClinicRef(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	clinicRef := ctx.Param("clinic_ref")

	res, err := c.patientService.GetByClinicRef(reqCtx, clinicRef)
	if err != nil {
		c.logger.Error("Ошибка при поиске пациента по клиническому номеру",
			zap.Error(err), zap.String("clinic_ref", clinicRef))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Пациент успешно найден", http.StatusOK)
}

func (c *PatientController) CreatePatient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreatePatientDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.patientService.Register(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при регистрации пациента", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Пациент успешно зарегистрирован", http.StatusCreated)
}

func (c *PatientController) UpdatePatient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Некорректный ID пациента"), c.logger)
	}

	var payload dto.UpdatePatientDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.patientService.Update(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении пациента", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Данные пациента успешно обновлены", http.StatusOK)
}
