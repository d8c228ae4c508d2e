package router

import (
	"net/http"

	"paymentapi/config"
	"paymentapi/internal/events"
	"paymentapi/internal/handler"
	"paymentapi/internal/middleware"
	"paymentapi/internal/repository"
	"paymentapi/internal/service"
	"paymentapi/internal/ws"
	"paymentapi/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the collaborators built by the caller. Publisher receives every
// status change; Hub backs the websocket feed and may also be one of the
// publisher's targets.
type Deps struct {
	DB        *gorm.DB
	Gateway   payment.Gateway
	Hub       *ws.Hub
	Publisher events.Publisher
	Logger    *zap.Logger
}

func Setup(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := deps.Logger
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger.With(zap.String("component", "http"))))
	if cfg.RateLimit.RPS > 0 {
		r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)))
	}

	// Repositories
	recordRepo := repository.NewRecordRepository(deps.DB)
	paymentRepo := repository.NewPaymentRepository(deps.DB)
	historyRepo := repository.NewHistoryRepository(deps.DB)
	refundRepo := repository.NewRefundRepository(deps.DB)
	chargeRepo := repository.NewChargeRepository(deps.DB)

	// Services
	lifecycle := service.NewLifecycleService(recordRepo, historyRepo, refundRepo, deps.Publisher,
		logger.With(zap.String("component", "lifecycle")))
	gatewaySvc := service.NewGatewayService(deps.Gateway, paymentRepo, lifecycle,
		logger.With(zap.String("component", "gateway")))

	// Handlers
	handlerLog := logger.With(zap.String("component", "handler"))
	infoHandler := handler.NewInfoHandler(&cfg.Info)
	paymentHandler := handler.NewPaymentHandler(paymentRepo, lifecycle, gatewaySvc, cfg.Paystack.CallbackBaseURL, handlerLog)
	historyHandler := handler.NewHistoryHandler(historyRepo, lifecycle, handlerLog)
	refundHandler := handler.NewRefundHandler(refundRepo, lifecycle, handlerLog)
	chargeHandler := handler.NewChargeHandler(chargeRepo, handlerLog)
	webhookHandler := handler.NewWebhookHandler(gatewaySvc, handlerLog)

	authMw := middleware.AuthRequired(&cfg.JWT)

	r.GET("/", infoHandler.Info)
	r.GET("/health", infoHandler.Health)

	api := r.Group("/api/v1")
	{
		// the gateway authenticates with its signature, not a token
		api.POST("/webhook/paystack/", webhookHandler.Paystack)

		payments := api.Group("/payments", authMw)
		{
			payments.GET("", paymentHandler.List)
			payments.POST("", paymentHandler.Create)
			payments.GET("/:id", paymentHandler.Get)
			payments.PUT("/:id", paymentHandler.Update)
			payments.PATCH("/:id", paymentHandler.Update)
			payments.DELETE("/:id", paymentHandler.Delete)
			payments.POST("/:id/process", paymentHandler.Process)
			payments.POST("/:id/mark_failed", paymentHandler.MarkFailed)
			payments.POST("/:id/initiate_payment", paymentHandler.InitiatePayment)
			payments.POST("/:id/verify_payment", paymentHandler.VerifyPayment)
		}

		history := api.Group("/payment-history", authMw)
		{
			history.GET("", historyHandler.List)
			history.POST("", historyHandler.Create)
			history.GET("/:id", historyHandler.Get)
			history.PUT("/:id", historyHandler.Update)
			history.PATCH("/:id", historyHandler.Update)
			history.DELETE("/:id", historyHandler.Delete)
			history.POST("/:id/add_note", historyHandler.AddNote)
		}

		refunds := api.Group("/payment-refunds", authMw)
		{
			refunds.GET("", refundHandler.List)
			refunds.POST("", refundHandler.Create)
			refunds.GET("/:id", refundHandler.Get)
			refunds.PUT("/:id", refundHandler.Update)
			refunds.PATCH("/:id", refundHandler.Update)
			refunds.DELETE("/:id", refundHandler.Delete)
			refunds.POST("/:id/process_refund", refundHandler.ProcessRefund)
		}

		charges := api.Group("/payment-charges", authMw)
		{
			charges.GET("", chargeHandler.List)
			charges.POST("", chargeHandler.Create)
			charges.GET("/:id", chargeHandler.Get)
			charges.PUT("/:id", chargeHandler.Update)
			charges.PATCH("/:id", chargeHandler.Update)
			charges.DELETE("/:id", chargeHandler.Delete)
			charges.GET("/:id/calculate_total", chargeHandler.CalculateTotal)
		}
	}

	r.GET("/ws/payments", ws.ServeStatusFeed(&cfg.JWT, deps.Hub, logger.With(zap.String("component", "ws"))))

	return r
}

// WithCORS wraps the engine so preflight requests are answered before routing.
func WithCORS(cfg *config.ServerConfig, h http.Handler) http.Handler {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Paystack-Signature", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	})(h)
}
