package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-system/internal/listeners"
	"clinic-system/internal/repositories"
	"clinic-system/internal/services"
	"clinic-system/pkg/config"
	"clinic-system/pkg/eventbus"
	"clinic-system/pkg/filestorage"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Storage.UploadsRoot)
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)
	bus := eventbus.New(logger)
	sanitizer := filestorage.NewDefaultSanitizer()
	notifier := services.NewNotificationService(cfg.Admin.ContactEmails, logger)

	// --- РЕПОЗИТОРИИ ---
	patientRepo := repositories.NewPatientRepository(dbConn, logger)
	attachmentRepo := repositories.NewAttachmentRepository(dbConn)
	orderRepo := repositories.NewMedicalOrderRepository(dbConn)
	admissionRepo := repositories.NewWardAdmissionRepository(dbConn)
	surgeryRepo := repositories.NewSurgeryRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- СЕРВИСЫ ---
	pipeline := services.NewUploadPipeline(fileStorage, attachmentRepo, patientRepo, txManager, notifier, bus, logger)
	patientService := services.NewPatientService(patientRepo, txManager, logger)
	attachmentService := services.NewAttachmentService(
		pipeline, attachmentRepo, orderRepo, surgeryRepo, fileStorage, notifier, bus, logger)
	orderService := services.NewMedicalOrderService(orderRepo, patientRepo, txManager, logger)
	admissionService := services.NewWardAdmissionService(admissionRepo, patientRepo, pipeline, logger)
	surgeryService := services.NewSurgeryService(surgeryRepo, patientRepo, logger)
	repairService := services.NewRepairService(attachmentRepo, txManager, sanitizer, logger)
	reportService := services.NewReportService(reportRepo, cacheRepo, cfg.Cache.StatsTTL, logger)

	listeners.RegisterAttachmentListeners(bus, reportService)

	// --- РОУТЕРЫ ---
	runPatientRouter(api, patientService, logger)
	runUploadRouter(api, attachmentService, logger)
	runAttachmentRouter(api, attachmentService, logger)
	runMedicalOrderRouter(api, orderService, logger)
	runWardAdmissionRouter(api, admissionService, logger)
	runSurgeryRouter(api, surgeryService, logger)
	runReportRouter(api, reportService, logger)
	runAdminRouter(api, repairService, logger)

	// Раздача сохранённых файлов для предпросмотра в интерфейсе.
	e.Static("/uploads", cfg.Storage.UploadsRoot)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
