package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/his-portal-api/api/swagger"
	"github.com/noah-isme/his-portal-api/internal/handler"
	"github.com/noah-isme/his-portal-api/internal/middleware"
	"github.com/noah-isme/his-portal-api/internal/models"
	"github.com/noah-isme/his-portal-api/internal/repository"
	"github.com/noah-isme/his-portal-api/internal/service"
	"github.com/noah-isme/his-portal-api/pkg/config"
	"github.com/noah-isme/his-portal-api/pkg/jobs"
	"github.com/noah-isme/his-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/his-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/his-portal-api/pkg/middleware/requestid"
)

// @title HIS Portal API
// @version 0.1.0
// @description Role-based school portal over in-memory seeded stores
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Everything boots from the bundled mock dataset; restart resets it.
	seed := repository.DefaultSeed()
	users := repository.NewUserRepository(seed.Users)
	permissions := repository.NewPermissionRepository(seed.Permissions)
	ledger := repository.NewLedgerRepository(seed.Ledger)
	messages := repository.NewMessageRepository(seed.Messages)
	schedules := repository.NewScheduleRepository(seed.Schedules)

	scheduler := jobs.NewScheduler("messaging", logr)
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	metricsSvc := service.NewMetricsService()

	authSvc := service.NewAuthService(users, nil, logr, service.AuthConfig{
		Secret:         cfg.JWT.Secret,
		Expiry:         cfg.JWT.Expiration,
		Issuer:         cfg.JWT.Issuer,
		SimulatedDelay: cfg.Login.SimulatedDelay,
	})
	permissionSvc := service.NewPermissionService(permissions, cfg.Permissions.AutoGrantThreshold, nil, logr)
	paymentSvc := service.NewPaymentService(ledger, nil, logr)
	messageSvc := service.NewMessageService(messages, users, scheduler, cfg.Messaging.DeliveryDelay, metricsSvc, nil, logr)
	scheduleSvc := service.NewScheduleService(schedules, nil, logr)
	dashboardSvc := service.NewDashboardService(schedules, messages, ledger, logr)
	exportSvc := service.NewExportService(ledger, logr)

	if err := permissionSvc.Initialize(context.Background()); err != nil {
		logr.Sugar().Fatalw("failed to apply initial permission policy", "error", err)
	}

	authHandler := handler.NewAuthHandler(authSvc)
	permissionHandler := handler.NewPermissionHandler(permissionSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("", middleware.JWT(authSvc))
	{
		protected.GET("/metrics/summary", metricsHandler.Snapshot)

		protected.GET("/schedules", scheduleHandler.List)
		protected.GET("/schedules/grid", scheduleHandler.Grid)
		protected.POST("/schedules", middleware.RequireRoles(models.RoleTeacher), scheduleHandler.Upsert)
		protected.DELETE("/schedules/:id", middleware.RequireRoles(models.RoleTeacher), scheduleHandler.Delete)

		protected.GET("/messages/inbox", messageHandler.Inbox)
		protected.GET("/messages/outbox", messageHandler.Outbox)
		protected.GET("/messages/counts", messageHandler.Counts)
		protected.GET("/messages/:id", messageHandler.View)
		protected.POST("/messages", messageHandler.Send)

		finance := protected.Group("", middleware.RequireRoles(models.RoleFinance))
		{
			finance.GET("/permissions", permissionHandler.List)
			finance.PUT("/permissions/:studentId", permissionHandler.Toggle)

			finance.GET("/payments", paymentHandler.List)
			finance.GET("/payments/summary", paymentHandler.Summary)
			finance.GET("/payments/:studentId", paymentHandler.Get)
			finance.PUT("/payments/:studentId", paymentHandler.Apply)

			if cfg.Exports.Enabled {
				finance.GET("/exports/ledger.csv", exportHandler.LedgerCSV)
				finance.GET("/exports/ledger.pdf", exportHandler.LedgerPDF)
			}
		}

		protected.GET("/dashboard/student", middleware.RequireRoles(models.RoleStudent), dashboardHandler.Student)
		protected.GET("/dashboard/teacher", middleware.RequireRoles(models.RoleTeacher), dashboardHandler.Teacher)
		protected.GET("/dashboard/finance", middleware.RequireRoles(models.RoleFinance), dashboardHandler.Finance)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
