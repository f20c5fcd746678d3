package main

import (
	"fmt"
	"gestor/internal/config"
	"gestor/internal/database"
	"gestor/internal/handlers"
	"gestor/internal/logger"
	"gestor/internal/middleware"
	"gestor/internal/services"
	"gestor/internal/validator"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gestor/internal/docs" // Import swagger docs
)

// @title           Gestor API
// @version         1.0
// @description     Gestor is a shared personal finance application: multi-member ledger accounts with categorized transactions and premium automation rules that move money between categories.
// @termsOfService  http://swagger.io/terms/

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

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db, userService, accountService)
	evaluator := services.NewEventRuleEvaluator()
	transactionService := services.NewTransactionService(db, accountService, categoryService, evaluator)
	ruleService := services.NewRuleService(db, userService, accountService, categoryService)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	eventRuleHandler := handlers.NewEventRuleHandler(ruleService, auditService)
	scheduledRuleHandler := handlers.NewScheduledRuleHandler(ruleService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/profile/upgrade", authHandler.UpgradeToPremium)

	// Account routes
	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)
	accounts.GET("/:id/members", accountHandler.ListMembers)
	accounts.POST("/:id/members", accountHandler.AddMember)

	// Category routes
	accounts.GET("/:id/categories", categoryHandler.ListCategories)
	accounts.POST("/:id/categories", categoryHandler.CreateCategory)
	accounts.PUT("/:id/categories/:categoryId", categoryHandler.UpdateCategory)
	accounts.DELETE("/:id/categories/:categoryId", categoryHandler.DeleteCategory)

	// Transaction routes
	accounts.GET("/:id/transactions", transactionHandler.GetAccountTransactions)
	accounts.POST("/:id/transactions", transactionHandler.CreateTransaction)
	accounts.GET("/:id/transactions/summary", transactionHandler.GetCategorySummary)
	accounts.GET("/:id/transactions/:transactionId", transactionHandler.GetTransactionByID)
	accounts.PUT("/:id/transactions/:transactionId", transactionHandler.UpdateTransaction)
	accounts.DELETE("/:id/transactions/:transactionId", transactionHandler.DeleteTransaction)

	// Automation rule routes (premium)
	accounts.GET("/:id/event-rules", eventRuleHandler.ListEventRules)
	accounts.POST("/:id/event-rules", eventRuleHandler.CreateEventRule)
	accounts.PATCH("/:id/event-rules/:ruleId", eventRuleHandler.UpdateEventRule)
	accounts.DELETE("/:id/event-rules/:ruleId", eventRuleHandler.DeleteEventRule)

	accounts.GET("/:id/scheduled-rules", scheduledRuleHandler.ListScheduledRules)
	accounts.POST("/:id/scheduled-rules", scheduledRuleHandler.CreateScheduledRule)
	accounts.PATCH("/:id/scheduled-rules/:ruleId", scheduledRuleHandler.UpdateScheduledRule)
	accounts.DELETE("/:id/scheduled-rules/:ruleId", scheduledRuleHandler.DeleteScheduledRule)

	log.Infof("Starting Gestor backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
