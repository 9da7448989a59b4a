package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gastos/internal/config"
	"gastos/internal/database"
	"gastos/internal/handlers"
	"gastos/internal/logger"
	"gastos/internal/middleware"
	"gastos/internal/services"
	"gastos/internal/validator"

	_ "gastos/internal/docs" // Register swagger docs
)

// @title           Gastos Familia API
// @version         1.0
// @description     Multi-tenant family expense tracking API. Every business entity is scoped to the caller's tenant.

// @host      localhost:3000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
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

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Services
	db := dbManager.DB()
	authService := services.NewAuthService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db)
	merchantService := services.NewMerchantService(db)
	memberService := services.NewFamilyMemberService(db)
	invitationService := services.NewInvitationService(db)
	recurringService := services.NewRecurringExpenseService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	merchantHandler := handlers.NewMerchantHandler(merchantService)
	memberHandler := handlers.NewFamilyMemberHandler(memberService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	recurringHandler := handlers.NewRecurringExpenseHandler(recurringService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Identity resolution runs on every request; it never rejects on its
	// own, so public routes stay reachable without a token.
	router.Use(middleware.ResolveIdentity(db))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.RequireAuth())

	protected.GET("/user/profile", authHandler.GetProfile)
	protected.PUT("/user/language", authHandler.UpdateLanguage)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	merchants := protected.Group("/merchants")
	merchants.GET("", merchantHandler.GetMerchants)
	merchants.POST("", merchantHandler.CreateMerchant)

	members := protected.Group("/family-members")
	members.GET("", memberHandler.GetMembers)
	members.POST("", memberHandler.CreateMember)
	members.PUT("/:id", memberHandler.UpdateMember)
	members.DELETE("/:id", memberHandler.DeleteMember)

	invitations := protected.Group("/invitations")
	invitations.GET("", invitationHandler.GetInvitations)
	invitations.POST("", invitationHandler.CreateInvitation)
	invitations.DELETE("/:id", invitationHandler.DeleteInvitation)

	recurring := protected.Group("/recurring-expenses")
	recurring.GET("", recurringHandler.GetRecurringExpenses)
	recurring.POST("", recurringHandler.CreateRecurringExpense)
	recurring.PUT("/:id", recurringHandler.UpdateRecurringExpense)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurringExpense)

	log.Infof("Starting Gastos backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
