package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"main/agent"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"TODOS_COLLECTION",
		"THREADS_COLLECTION",
		"MESSAGES_COLLECTION",
		"PREFERENCES_COLLECTION",
		"JWT_SECRET_KEY",
		"REDIS_URL",
		"INTERNAL_API_TOKEN",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	if os.Getenv("GO_ENV") != "test" {
		utils.InitMongoClient()
	}
}

func setupRouter(limiter middleware.Limiter) *gin.Engine {
	router := gin.Default()

	// Repositories
	todosRepo := repository.GetTodosRepo(utils.MongoClient)
	threadsRepo := repository.GetThreadsRepo(utils.MongoClient)
	messagesRepo := repository.GetMessagesRepo(utils.MongoClient)
	preferencesRepo := repository.GetPreferencesRepo(utils.MongoClient)

	// Services
	todosService := usecase.NewTodosService(todosRepo)
	threadsService := usecase.NewThreadsService(threadsRepo, messagesRepo)
	preferencesService := usecase.NewPreferencesService(preferencesRepo)
	dashboardService := usecase.NewDashboardService(todosRepo, threadsRepo, messagesRepo, preferencesRepo)

	// Handlers
	todosHandler := handler.NewTodosHandler(todosService)
	threadsHandler := handler.NewThreadsHandler(threadsService)
	preferencesHandler := handler.NewPreferencesHandler(preferencesService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	agentHandler := handler.NewAgentHandler(agent.NewDispatcher(todosService))

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Client-facing routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		todos := protected.Group("/todos")
		{
			todos.GET("/", todosHandler.GetUserTodos)
			todos.GET("/status", todosHandler.GetTodosByStatus)
			todos.GET("/priority", todosHandler.GetTodosByPriority)
			todos.GET("/overdue", todosHandler.GetOverdueTodos)
			todos.GET("/stats", todosHandler.GetTodoStats)
			todos.POST("/", middleware.RateLimit(limiter, services.ActionCreateTodo), todosHandler.CreateTodo)
			todos.PATCH("/:id", middleware.RateLimit(limiter, services.ActionUpdateTodo), todosHandler.UpdateTodo)
			todos.POST("/:id/toggle", middleware.RateLimit(limiter, services.ActionUpdateTodo), todosHandler.ToggleTodo)
			todos.DELETE("/:id", middleware.RateLimit(limiter, services.ActionDeleteTodo), todosHandler.DeleteTodo)
			todos.DELETE("/completed/all", middleware.RateLimit(limiter, services.ActionDeleteTodo), todosHandler.ClearCompleted)
		}

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/summary", dashboardHandler.GetSummary)
			dashboard.GET("/recent", dashboardHandler.GetRecent)
		}

		threads := protected.Group("/threads")
		{
			threads.GET("/", threadsHandler.GetUserThreads)
			threads.POST("/", middleware.RateLimit(limiter, services.ActionCreateThread), threadsHandler.CreateThread)
			threads.POST("/:id/archive", threadsHandler.ArchiveThread)
			threads.GET("/:id/messages", threadsHandler.GetThreadMessages)
			threads.POST("/:id/messages", middleware.RateLimit(limiter, services.ActionSendMessage), threadsHandler.SendMessage)
		}

		preferences := protected.Group("/preferences")
		{
			preferences.GET("/", preferencesHandler.GetPreferences)
			preferences.POST("/initialize", preferencesHandler.InitializePreferences)
			preferences.PATCH("/", middleware.RateLimit(limiter, services.ActionUpdatePreferences), preferencesHandler.UpdatePreferences)
		}
	}

	// Agent tool bridge (service token required, caller-supplied user id)
	internal := router.Group("/internal/agent")
	internal.Use(middleware.InternalAuthMiddleware())
	{
		internal.POST("/list-todos", agentHandler.ListTodos)
		internal.POST("/create-todo", agentHandler.CreateTodo)
		internal.POST("/update-todo", agentHandler.UpdateTodo)
		internal.POST("/delete-todo", agentHandler.DeleteTodo)
		internal.POST("/todo-stats", agentHandler.GetTodoStats)
	}

	return router
}

func main() {
	limiter, err := services.NewRateLimiter(os.Getenv("REDIS_URL"), nil)
	if err != nil {
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}
	defer limiter.Close()

	db := utils.MongoClient.Database(os.Getenv("MONGO_DB"))
	if err := repository.SetupIndexes(db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	if utils.GetEnvAsBool("SYSTEM_METRICS_ENABLED", true) {
		utils.StartSystemMetrics(utils.GetEnvAsDuration("SYSTEM_METRICS_INTERVAL", 15*time.Second))
	}

	router := setupRouter(limiter)

	port := utils.GetEnvAsString("PORT", "8080")
	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
