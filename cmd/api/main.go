package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"spendwise/internal/config"
	"spendwise/internal/database"
	"spendwise/internal/handlers"
	"spendwise/internal/logger"
	"spendwise/internal/middleware"
	"spendwise/internal/services"
	"spendwise/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "spendwise/internal/docs" // Import swagger docs
)

// @title           Spendwise API
// @version         1.0
// @description     Spendwise tracks expenses, fixed costs and income and reports what is left of a monthly budget.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	expenseService := services.NewExpenseService(db)
	fixedExpenseService := services.NewFixedExpenseService(db)
	incomeService := services.NewIncomeService(db)
	summaryService := services.NewSummaryService(db)
	savingsGoalService := services.NewSavingsGoalService(db, summaryService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	fixedExpenseHandler := handlers.NewFixedExpenseHandler(fixedExpenseService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	savingsGoalHandler := handlers.NewSavingsGoalHandler(savingsGoalService, auditService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(appConfig.CORSOrigin))
	router.Use(middleware.ErrorHandler())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", middleware.APIKeyAuth(appConfig.MetricsAPIKey), gin.WrapH(promhttp.Handler()))

	router.GET("/api/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := dbManager.Ping(ctx); err != nil {
			log.Warnw("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	fixed := protected.Group("/fixed-expenses")
	fixed.POST("", fixedExpenseHandler.CreateFixedExpense)
	fixed.GET("", fixedExpenseHandler.GetFixedExpenses)
	fixed.GET("/:id", fixedExpenseHandler.GetFixedExpenseByID)
	fixed.PUT("/:id", fixedExpenseHandler.UpdateFixedExpense)
	fixed.DELETE("/:id", fixedExpenseHandler.DeleteFixedExpense)
	fixed.PUT("/:id/overrides/:month", fixedExpenseHandler.SetOverride)
	fixed.DELETE("/:id/overrides/:month", fixedExpenseHandler.ClearOverride)

	income := protected.Group("/income")
	income.GET("", incomeHandler.GetIncome)
	income.PUT("", incomeHandler.SetIncome)
	income.PUT("/overrides/:month", incomeHandler.SetIncomeOverride)
	income.DELETE("/overrides/:month", incomeHandler.ClearIncomeOverride)

	goals := protected.Group("/savings-goals")
	goals.POST("", savingsGoalHandler.CreateSavingsGoal)
	goals.GET("", savingsGoalHandler.GetSavingsGoals)
	goals.GET("/:id", savingsGoalHandler.GetSavingsGoalByID)
	goals.DELETE("/:id", savingsGoalHandler.DeleteSavingsGoal)
	goals.GET("/:id/progress", savingsGoalHandler.GetSavingsGoalProgress)

	summary := protected.Group("/summary")
	summary.GET("/dashboard", summaryHandler.GetDashboard)
	summary.GET("/window", summaryHandler.GetWindow)
	summary.GET("/months/:month", summaryHandler.GetMonth)
	summary.GET("/chart", summaryHandler.GetChart)
	summary.GET("/years/:year", summaryHandler.GetYear)

	log.Infof("Starting Spendwise backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
