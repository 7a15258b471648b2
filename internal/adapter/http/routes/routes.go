package routes

import (
	"context"
	"fmt"
	"log"
	"net/http"

	_ "rugquotes/docs" // swagger docs, generated
	"rugquotes/internal/adapter/http/handlers"
	"rugquotes/internal/adapter/persistence/repository"
	"rugquotes/internal/infrastructure/cache"
	appconfig "rugquotes/internal/infrastructure/config"
	"rugquotes/internal/infrastructure/database"
	"rugquotes/internal/infrastructure/logger"
	"rugquotes/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Run wires the whole service and starts the server.
func Run() {
	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	router := gin.New()
	setMiddlewares(router, zlog)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := registerRoutes(router, cfg, zlog); err != nil {
		zlog.Fatal("failed to wire routes", zap.Error(err))
	}

	if err := router.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		zlog.Fatal("failed to start the application", zap.Error(err))
	}
}

func registerRoutes(router *gin.Engine, cfg *appconfig.Config, zlog *zap.Logger) error {
	ctx := context.Background()

	ddb, err := database.NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return err
	}

	store := cache.NewNoop()
	if cfg.RedisAddr != "" {
		redisStore, err := cache.NewRedis(ctx, cfg.RedisAddr)
		if err != nil {
			zlog.Warn("redis unavailable, portal cache disabled", zap.Error(err))
		} else {
			store = redisStore
		}
	}

	quoteRepo := repository.NewQuoteDynamoRepository(ddb, cfg.QuotesTable, cfg.CountersTable)
	noteRepo := repository.NewQuoteNoteDynamoRepository(ddb, cfg.NotesTable)
	logRepo := repository.NewActivityLogDynamoRepository(ddb, cfg.ActivityLogsTable)

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, noteRepo, logRepo, zlog)
	noteUseCase := usecase.NewNoteUseCase(quoteRepo, noteRepo)
	activityLogUseCase := usecase.NewActivityLogUseCase(logRepo)
	importUseCase := usecase.NewImportUseCase(quoteRepo, logRepo, zlog)

	quoteHandler := handlers.NewQuoteHandler(quoteUseCase, store)
	noteHandler := handlers.NewNoteHandler(noteUseCase)
	activityLogHandler := handlers.NewActivityLogHandler(activityLogUseCase)
	importHandler := handlers.NewImportHandler(importUseCase)
	portalHandler := handlers.NewPortalHandler(quoteUseCase, store, cfg.PortalCacheTTL)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, cfg.JWTSecret, quoteHandler, noteHandler, activityLogHandler, importHandler)
	addPortalRoutes(v1, portalHandler)
	return nil
}

func setMiddlewares(router *gin.Engine, zlog *zap.Logger) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		zlog.Error("recovered from panic", zap.Any("panic", recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
