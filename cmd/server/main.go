package main

import (
	"log"
	"net/http"

	"event-assistance-api/config"
	"event-assistance-api/internal/auth"
	"event-assistance-api/internal/cache"
	"event-assistance-api/internal/database"
	"event-assistance-api/internal/handler"
	"event-assistance-api/internal/repository"
	"event-assistance-api/internal/service"
	"event-assistance-api/internal/storage"
	"event-assistance-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(&cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	store, err := storage.NewS3ObjectStore(&cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize object store: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	statsCache := cache.NewStatsCache(rdb)

	eventRepo := repository.NewEventRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	assistanceRepo := repository.NewAssistanceRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	eventService := service.NewEventService(eventRepo, statsCache)
	userService := service.NewUserService(userRepo, statsCache)
	registrationService := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)
	adminService := service.NewAdminService(adminRepo, jwtManager)

	router := gin.Default()
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "¡Backend funcionando!"})
	})

	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewUserHandler(userService).RegisterRoutes(router)
	handler.NewUploadHandler(registrationService).RegisterRoutes(router)
	handler.NewAdminHandler(adminService, jwtManager).RegisterRoutes(router)

	logger.WithComponent("main").Info("Server starting")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
