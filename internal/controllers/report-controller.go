package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/services"
	"clinic-system/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetCategoryStats(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.reportService.GetCategoryStats(reqCtx)
	if err != nil {
		c.logger.Error("Ошибка при получении сводки по категориям", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Сводка по категориям успешно получена", http.StatusOK)
}

// GetAttachmentReport отдаёт отчёт по вложениям. При ?format=xlsx
// вместо JSON выгружается файл Excel.
func (c *ReportController) GetAttachmentReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if ctx.QueryParam("format") == "xlsx" {
		data, err := c.reportService.ExportAttachmentsXLSX(reqCtx)
		if err != nil {
			c.logger.Error("Ошибка при выгрузке отчёта в Excel", zap.Error(err))
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		fileName := fmt.Sprintf("attachments_%s.xlsx", time.Now().Format("2006-01-02"))
		ctx.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s"`, fileName))
		return ctx.Blob(http.StatusOK, xlsxContentType, data)
	}

	filter := utils.ParseFilterFromQuery(ctx.QueryParams())
	items, total, err := c.reportService.GetAttachmentReport(reqCtx, filter.Limit, filter.Offset)
	if err != nil {
		c.logger.Error("Ошибка при получении отчёта по вложениям", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	body := map[string]interface{}{
		"list":        items,
		"total_count": total,
	}
	return utils.SuccessResponse(ctx, body, "Отчёт по вложениям успешно получен", http.StatusOK)
}
