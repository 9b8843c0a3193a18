// Package server assembles the HTTP router from services, handlers and middleware.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"betmetric/internal/config"
	_ "betmetric/internal/docs" // Import swagger docs
	"betmetric/internal/handlers"
	"betmetric/internal/middleware"
	"betmetric/internal/services"
)

// Services bundles the business services the router dispatches to.
type Services struct {
	Bets         services.BetServicer
	Transactions services.TransactionServicer
	Metrics      services.MetricsServicer
	Sweep        services.SweepServicer
}

// NewServices wires every service against the same database handle.
func NewServices(db *gorm.DB) Services {
	return Services{
		Bets:         services.NewBetService(db),
		Transactions: services.NewTransactionService(db),
		Metrics:      services.NewMetricsService(db),
		Sweep:        services.NewSweepService(db),
	}
}

// NewRouter builds the gin engine with all routes mounted.
func NewRouter(svc Services, cfg *config.Config) *gin.Engine {
	betHandler := handlers.NewBetHandler(svc.Bets)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions)
	metricsHandler := handlers.NewMetricsHandler(svc.Metrics)
	pipelineHandler := handlers.NewPipelineHandler(svc.Sweep)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")

	bets := v1.Group("/bets")
	bets.POST("", betHandler.CreateBet)
	bets.GET("", betHandler.ListBets)
	bets.GET("/root", betHandler.GetRootBets)
	bets.GET("/tree", betHandler.GetTree)
	bets.GET("/tree/:id", betHandler.GetSubtree)
	bets.GET("/:id", betHandler.GetBet)
	bets.GET("/:id/financials", betHandler.GetBetFinancials)
	bets.PATCH("/:id", betHandler.UpdateBet)
	bets.DELETE("/:id", betHandler.DeleteBet)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	v1.GET("/metrics/summary", metricsHandler.GetSummary)

	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	pipeline.POST("/sweep", pipelineHandler.Sweep)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
