package listeners

import (
	"context"

	"clinic-system/internal/events"
	"clinic-system/internal/services"
	"clinic-system/pkg/eventbus"
)

// RegisterAttachmentListeners подписывает обработчики событий вложений:
// кешированная сводка по категориям устаревает после каждой загрузки
// и каждого удаления.
func RegisterAttachmentListeners(bus *eventbus.Bus, reportService services.ReportServiceInterface) {
	invalidate := func(ctx context.Context, _ eventbus.Event) error {
		reportService.InvalidateStatsCache(ctx)
		return nil
	}

	bus.Subscribe(events.AttachmentUploadedEvent{}.Name(), invalidate)
	bus.Subscribe(events.AttachmentDeletedEvent{}.Name(), invalidate)
}
