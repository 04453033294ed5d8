package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	transactionHandler *handler.TransactionHandler,
	healthHandler *handler.HealthHandler,
) {
	transactions := router.Group("/transactions")
	{
		// POST /transactions
		transactions.POST("", transactionHandler.CreateTransaction)

		// GET /transactions/:id
		transactions.GET("/:id", transactionHandler.GetTransaction)

		// A missing id reaches the handler and is rejected there
		transactions.GET("", transactionHandler.GetTransaction)
		transactions.GET("/", transactionHandler.GetTransaction)
	}

	// GET /health
	router.GET("/health", healthHandler.Health)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.CORS())
}

// NewRouter builds a gin engine with middlewares and routes installed
func NewRouter(
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
	transactionHandler *handler.TransactionHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	router := gin.New()
	SetupMiddlewares(router, logger, timeProvider)
	SetupRoutes(router, transactionHandler, healthHandler)
	return router
}
