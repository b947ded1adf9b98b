package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"analogygen/internal/ai"
	appsvc "analogygen/internal/app"
	"analogygen/internal/bootstrap"
	"analogygen/internal/cache"
	"analogygen/internal/platform/rabbitmq"
	"analogygen/internal/repository"
	"analogygen/internal/transport/http/handler"
	"analogygen/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	historyRepo := repository.NewHistoryRepository(app.MySQL)
	historyCache := cache.NewHistoryCache(
		app.Redis,
		time.Duration(app.Config.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.HistoryDirtyTTLSeconds)*time.Second,
	)
	eventPublisher := rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.EventPersistQueue)

	llmTimeout := time.Duration(app.Config.LLM.CallTimeoutSeconds) * time.Second
	llmClient := ai.NewOpenAICompatibleClient(llmTimeout)
	llmConfig := ai.ChatConfig{
		BaseURL:     app.Config.LLM.BaseURL,
		APIKey:      app.Config.LLM.APIKey,
		Model:       app.Config.LLM.Model,
		Temperature: app.Config.LLM.Temperature,
		MaxTokens:   app.Config.LLM.MaxTokens,
	}

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	analogyService := appsvc.NewAnalogyService(
		historyRepo, historyCache, eventPublisher, llmClient, llmConfig, llmTimeout,
	)
	historyService := appsvc.NewHistoryService(historyRepo, historyCache)

	registerAPIRoutes(
		router,
		app.Config.Auth.JWTSecret,
		handler.NewAuthHandler(authService),
		handler.NewAnalogyHandler(analogyService),
		handler.NewHistoryHandler(historyService),
	)
	return router
}

func registerAPIRoutes(
	router *gin.Engine,
	jwtSecret string,
	authHandler *handler.AuthHandler,
	analogyHandler *handler.AnalogyHandler,
	historyHandler *handler.HistoryHandler,
) {
	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)

	protected := router.Group("/", middleware.AuthJWT(jwtSecret))
	protected.POST("/generate", analogyHandler.Generate)
	protected.POST("/quiz", analogyHandler.Quiz)
	protected.GET("/history", historyHandler.List)
	protected.DELETE("/history/:id", historyHandler.Delete)
}
