package main

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ilyasseisov/flashcards/internal/config"
	"github.com/ilyasseisov/flashcards/internal/database"
	"github.com/ilyasseisov/flashcards/internal/handlers"
	"github.com/ilyasseisov/flashcards/internal/middleware"
	"github.com/ilyasseisov/flashcards/internal/quiz"
	"github.com/ilyasseisov/flashcards/internal/services"
	"github.com/ilyasseisov/flashcards/internal/ws"

	_ "github.com/ilyasseisov/flashcards/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Flashcards API
// @version         1.0
// @description     Categorized multiple-choice flashcards with per-user progress tracking
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()
	manager := quiz.NewManager()

	authService := services.NewAuthService(cfg.JWTSecret)
	catalogService := services.NewCatalogService(db)
	aggregatorService := services.NewAggregatorService()
	progressService := services.NewProgressService(db, aggregatorService)
	userService := services.NewUserService(db, progressService)
	quizService := services.NewQuizService(catalogService, progressService, manager)

	if cfg.SeedFile != "" {
		if err := catalogService.SeedFromFile(cfg.SeedFile); err != nil {
			log.Fatalf("failed to seed catalog: %v", err)
		}
	}

	catalogHandler := handlers.NewCatalogHandler(catalogService, progressService)
	quizHandler := handlers.NewQuizHandler(quizService, hub)
	progressHandler := handlers.NewProgressHandler(progressService)
	webhookHandler := handlers.NewWebhookHandler(userService, cfg.WebhookSecret)
	wsHandler := handlers.NewWSHandler(hub, quizService)

	ttlMin, _ := strconv.Atoi(cfg.SessionTTL)
	if ttlMin <= 0 {
		ttlMin = 120
	}
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if removed := manager.Sweep(time.Duration(ttlMin) * time.Minute); removed > 0 {
				log.Printf("swept %d idle quiz sessions", removed)
			}
		}
	}()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-API-Key"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/quiz/:token", wsHandler.HandleWebSocket)
	r.POST("/api/webhooks/identity", webhookHandler.HandleIdentityEvent)

	api := r.Group("/api/v1")
	{
		categories := api.Group("/categories")
		categories.Use(middleware.OptionalAuth(authService))
		{
			categories.GET("", catalogHandler.ListCategories)
			categories.GET("/:slug", catalogHandler.GetCategory)
			categories.GET("/:slug/:subslug/flashcards", catalogHandler.GetFlashcards)
		}

		quizzes := api.Group("/quiz")
		quizzes.Use(middleware.OptionalAuth(authService))
		{
			quizzes.POST("/start", quizHandler.StartQuiz)
			quizzes.POST("/resume", quizHandler.ResumeQuiz)
			quizzes.GET("/:token", quizHandler.GetQuiz)
			quizzes.GET("/:token/snapshot", quizHandler.GetSnapshot)
			quizzes.POST("/:token/answer", quizHandler.SelectAnswer)
			quizzes.POST("/:token/next", quizHandler.NextQuestion)
			quizzes.POST("/:token/jump", quizHandler.JumpToQuestion)
			quizzes.POST("/:token/reset", quizHandler.ResetQuiz)
			quizzes.POST("/:token/finish", quizHandler.FinishQuiz)
		}

		progress := api.Group("/progress")
		{
			progress.GET("/summary", middleware.OptionalAuth(authService), progressHandler.GetSummary)
			progress.POST("", middleware.JWTAuth(authService), progressHandler.SaveProgress)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.AdminAPIKey))
		{
			admin.POST("/catalog/import", catalogHandler.ImportCatalog)
			admin.GET("/catalog/export", catalogHandler.ExportCatalog)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
