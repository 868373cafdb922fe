package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "mimo_finance/docs"
	"mimo_finance/internal/adapter/cache"
	"mimo_finance/internal/adapter/http/handlers"
	"mimo_finance/internal/adapter/http/routes"
	"mimo_finance/internal/adapter/persistence/repository"
	"mimo_finance/internal/config"
	"mimo_finance/internal/domain/calendar"
	"mimo_finance/internal/infrastructure/database"
	"mimo_finance/internal/infrastructure/payments"
	"mimo_finance/internal/usecase"
	"mimo_finance/internal/usecase/interfaces"
	"mimo_finance/pkg/logger"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Weekly Finance API
// @version         1.0
// @description     Weekly partner payments and finance aggregation backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cal, err := calendar.InZone(cfg.Business.Timezone)
	if err != nil {
		zapLogger.Fatal("invalid business timezone", zap.Error(err))
	}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		zapLogger.Fatal("dynamodb configuration failed", zap.Error(err))
	}
	paymentRepo := repository.NewPaymentDynamoRepository(ddb, cfg.DynamoDB.PaymentsTable)
	serviceRepo := repository.NewServiceDynamoRepository(ddb, cfg.DynamoDB.ServicesTable)
	partnerRepo := repository.NewPartnerDynamoRepository(ddb, cfg.DynamoDB.UsersTable)

	var shared interfaces.ICache
	if cfg.Cache.Enabled {
		redisClient, err := database.NewRedisClient(cfg.Redis)
		if err != nil {
			zapLogger.Warn("redis unavailable, snapshot cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			shared = cache.NewRedisCache(redisClient, cfg.Cache.Prefix)
		}
	}

	var offline interfaces.ICache
	offlineStore, err := cache.OpenBolt(cfg.Offline.Path, cfg.Offline.Bucket)
	if err != nil {
		zapLogger.Warn("offline store unavailable", zap.String("path", cfg.Offline.Path), zap.Error(err))
	} else {
		defer offlineStore.Close()
		offline = offlineStore
	}

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payout, zapLogger)
	if err != nil {
		zapLogger.Warn("Mercado Pago gateway not configured", zap.Error(err))
	} else {
		gateway = mpGateway
	}

	loader := usecase.NewSnapshotLoader(paymentRepo, serviceRepo, partnerRepo, shared, offline, cfg.Cache.TTL, zapLogger)
	financeUseCase := usecase.NewFinanceUseCase(loader, cal, cfg.Fuzzy.Options(), shared, cfg.Cache.TTL, zapLogger)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, serviceRepo, gateway, loader, cal, zapLogger)

	router := routes.New(routes.Handlers{
		Finance: handlers.NewFinanceHandler(financeUseCase, zapLogger),
		Payment: handlers.NewPaymentHandler(paymentUseCase, cal, zapLogger),
	}, zapLogger)

	server := &http.Server{Addr: cfg.HTTP.Address(), Handler: router}
	go func() {
		zapLogger.Info("server started", zap.String("address", server.Addr), zap.String("timezone", cal.Location().String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("failed to startup the application", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
