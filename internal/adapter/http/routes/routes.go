package routes

import (
	"net/http"
	"time"

	_ "mimo_finance/docs" // This will be auto-generated
	"mimo_finance/internal/adapter/http/handlers"
	"mimo_finance/pkg"
	"mimo_finance/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const BasePath = "/v1"

// Handlers groups everything the router mounts.
type Handlers struct {
	Finance *handlers.FinanceHandler
	Payment *handlers.PaymentHandler
}

// New builds the gin engine with middlewares, swagger and the /v1 routes.
func New(h Handlers, log *zap.Logger) *gin.Engine {
	log = logger.OrNop(log)
	router := gin.New()
	setMiddlewares(router, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group(BasePath)
	addPingRoutes(v1)
	addFinanceRoutes(v1, h.Finance)
	addPaymentRoutes(v1, h.Finance, h.Payment)
	return router
}

func setMiddlewares(router *gin.Engine, log *zap.Logger) {
	router.Use(requestLogger(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("recovered from panic", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		appErr := pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
	}))
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
