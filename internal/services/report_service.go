package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"clinic-system/internal/dto"
	"clinic-system/internal/repositories"
)

const categoryStatsCacheKey = "clinic:reports:category_stats"

// Страница выборки при выгрузке отчёта в Excel.
const reportExportPageSize = 500

type ReportServiceInterface interface {
	GetCategoryStats(ctx context.Context) ([]dto.CategoryStatDTO, error)
	GetAttachmentReport(ctx context.Context, limit, offset int) ([]dto.AttachmentReportItemDTO, uint64, error)
	// ExportAttachmentsXLSX собирает полный отчёт по вложениям в xlsx.
	ExportAttachmentsXLSX(ctx context.Context) ([]byte, error)
	// InvalidateStatsCache сбрасывает кеш сводки; вызывается слушателем
	// событий загрузки и удаления вложений.
	InvalidateStatsCache(ctx context.Context)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
	cache      repositories.CacheRepositoryInterface
	statsTTL   time.Duration
	logger     *zap.Logger
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	statsTTL time.Duration,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{
		reportRepo: reportRepo,
		cache:      cache,
		statsTTL:   statsTTL,
		logger:     logger,
	}
}

func (s *reportService) GetCategoryStats(ctx context.Context) ([]dto.CategoryStatDTO, error) {
	if cached, err := s.cache.Get(ctx, categoryStatsCacheKey); err == nil {
		var stats []dto.CategoryStatDTO
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return stats, nil
		}
		// Повреждённое значение в кеше не должно ломать отчёт.
		s.logger.Warn("не удалось разобрать кешированную сводку, читаем из БД")
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("кеш недоступен, читаем сводку из БД", zap.Error(err))
	}

	raw, err := s.reportRepo.GetCategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	stats := make([]dto.CategoryStatDTO, 0, len(raw))
	for _, r := range raw {
		stats = append(stats, dto.CategoryStatDTO{
			Category:   r.Category,
			Count:      r.Count,
			TotalBytes: r.TotalBytes,
		})
	}

	if encoded, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, categoryStatsCacheKey, encoded, s.statsTTL); err != nil {
			s.logger.Warn("не удалось записать сводку в кеш", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *reportService) GetAttachmentReport(ctx context.Context, limit, offset int) ([]dto.AttachmentReportItemDTO, uint64, error) {
	items, total, err := s.reportRepo.GetAttachmentReport(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.AttachmentReportItemDTO, 0, len(items))
	for _, item := range items {
		result = append(result, toReportItemDTO(item))
	}
	return result, total, nil
}

func (s *reportService) ExportAttachmentsXLSX(ctx context.Context) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	const sheet = "Вложения"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Клинический номер", "Пациент", "Категория", "Файл", "Размер, байт", "Статус", "Дата загрузки"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	for offset := 0; ; offset += reportExportPageSize {
		items, _, err := s.reportRepo.GetAttachmentReport(ctx, reportExportPageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			a := item.Attachment
			values := []interface{}{
				a.ID, a.OwnerRef, item.Patient, a.Category,
				a.OriginalFileName, a.FileSize, a.Status,
				a.CreatedAt.Format("02.01.2006 15:04"),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, err
				}
			}
			row++
		}
		if len(items) < reportExportPageSize {
			break
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("не удалось сформировать xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *reportService) InvalidateStatsCache(ctx context.Context) {
	if err := s.cache.Del(ctx, categoryStatsCacheKey); err != nil {
		s.logger.Warn("не удалось сбросить кеш сводки", zap.Error(err))
	}
}

func toReportItemDTO(item repositories.ReportItem) dto.AttachmentReportItemDTO {
	a := item.Attachment
	return dto.AttachmentReportItemDTO{
		ID:        a.ID,
		OwnerRef:  a.OwnerRef,
		Patient:   item.Patient,
		Category:  a.Category,
		FileName:  a.OriginalFileName,
		FileSize:  a.FileSize,
		Status:    a.Status,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
