package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"deployhub/internal/config"
	"deployhub/internal/database"
	"deployhub/internal/handlers"
	"deployhub/internal/repositories"
	"deployhub/internal/routes"
	"deployhub/internal/services"
)

func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	if err := database.EnsureDatabaseExists(); err != nil {
		log.Fatalf("failed to ensure database exists: %v", err)
	}

	pool, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(pool); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect to Redis at %s: %v", redisAddr, err)
		}
		log.Println("Connected to Redis successfully")
	}

	adminCfg, err := config.LoadAdmin()
	if err != nil {
		log.Fatalf("failed to load admin config: %v", err)
	}
	groqCfg := config.LoadGroq()
	platformCfg := config.LoadPlatform()

	// Dependency injection
	userRepo := repositories.NewUserRepository(pool)
	sessionRepo := repositories.NewSessionRepository(pool)
	appRepo := repositories.NewApplicationRepository(pool)
	deploymentRepo := repositories.NewDeploymentRepository(pool)
	analyticsRepo := repositories.NewAnalyticsRepository(pool)
	chatRepo := repositories.NewChatRepository(pool)
	fileRepo := repositories.NewFileRepository(pool)
	ticketRepo := repositories.NewTicketRepository(pool)
	adminSessionRepo := repositories.NewAdminSessionRepository(rdb)

	groqService := services.NewGroqService(groqCfg)
	authService := services.NewAuthService(userRepo, sessionRepo)
	userService := services.NewUserService(userRepo)
	appService := services.NewApplicationService(appRepo, userRepo)
	deploymentService := services.NewDeploymentService(deploymentRepo, appRepo, groqService, platformCfg)
	chatService := services.NewChatService(chatRepo, groqService)
	analyticsService := services.NewAnalyticsService(analyticsRepo, appRepo)
	fileService := services.NewFileService(fileRepo, platformCfg)
	ticketService := services.NewTicketService(ticketRepo)
	adminService := services.NewAdminService(adminCfg, adminSessionRepo, userRepo, ticketRepo, appRepo, deploymentRepo, analyticsRepo)

	h := routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		User:        handlers.NewUserHandler(userService),
		Application: handlers.NewApplicationHandler(appService),
		Deployment:  handlers.NewDeploymentHandler(deploymentService),
		Chat:        handlers.NewChatHandler(chatService),
		Analytics:   handlers.NewAnalyticsHandler(analyticsService),
		File:        handlers.NewFileHandler(fileService),
		Ticket:      handlers.NewTicketHandler(ticketService),
		Admin:       handlers.NewAdminHandler(adminService),
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(router, h, adminService)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
