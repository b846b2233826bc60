package routes

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the API exposes
type Handlers struct {
	Account      *handler.AccountHandler
	Wallet       *handler.WalletHandler
	Request      *handler.RequestHandler
	Notification *handler.NotificationHandler
	Feed         *handler.FeedHandler
	Health       *handler.HealthHandler
	// Metrics is optional; nil leaves /metrics unrouted
	Metrics     http.Handler
	MetricsPath string
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, tokens middleware.TokenParser) {
	router.GET("/healthz", h.Health.Health)
	if h.Metrics != nil {
		path := h.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(h.Metrics))
	}

	api := router.Group("/api/v1")

	// Public routes
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Account.Register)
		authRoutes.POST("/login", h.Account.Login)
	}
	api.GET("/packages", h.Wallet.Packages)
	api.GET("/quote", h.Wallet.Quote)

	// Authenticated routes
	secured := api.Group("", middleware.Auth(tokens))
	{
		secured.GET("/me", h.Account.Me)
		secured.PATCH("/me", h.Account.UpdateProfile)
		secured.PUT("/me/availability", h.Account.SetAvailability)

		secured.GET("/wallet", h.Wallet.Wallet)
		secured.POST("/wallet/purchase", h.Wallet.Purchase)
		secured.GET("/wallet/transactions", h.Wallet.Transactions)

		secured.GET("/providers", h.Request.Providers)

		secured.POST("/requests", h.Request.Create)
		secured.GET("/requests/active", h.Request.Active)
		secured.GET("/requests/pending", h.Request.Pending)
		secured.GET("/requests/:requestId", h.Request.Get)
		secured.POST("/requests/:requestId/accept", h.Request.Accept)
		secured.POST("/requests/:requestId/ignore", h.Request.Ignore)
		secured.POST("/requests/:requestId/complete", h.Request.Complete)

		secured.GET("/notifications", h.Notification.List)
		secured.POST("/notifications/:notificationId/read", h.Notification.MarkRead)

		secured.GET("/feed", h.Feed.Stream)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(
	router *gin.Engine,
	logger coreport.Logger,
	observer middleware.HTTPObserver,
	allowedOrigins []string,
) {
	// Apply middlewares in the correct order
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	if observer != nil {
		router.Use(middleware.Metrics(observer))
	}
	router.Use(middleware.CORS(allowedOrigins))
}
