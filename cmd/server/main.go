package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edusync/course-service/internal/cache"
	"github.com/edusync/course-service/internal/config"
	"github.com/edusync/course-service/internal/handlers"
	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/repositories"
	"github.com/edusync/course-service/internal/repositories/casdoor"
	"github.com/edusync/course-service/internal/repositories/postgres"
	"github.com/edusync/course-service/internal/services"
	"github.com/edusync/course-service/internal/utils"
	"github.com/edusync/course-service/internal/validator"
	"github.com/edusync/course-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseMaterial{},
		&models.Assessment{},
		&models.Result{},
		&models.CourseEnrollment{},
	); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	var cacheService cache.CacheService
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		// Analytics fall back to computing on every request.
		logger.Warn("Redis unavailable, running without analytics cache", "error", err)
	} else {
		cacheService = cache.NewRedisCache(redisClient, slogger)
		defer redisClient.Close()
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)

	var users repositories.UserDirectory
	if cfg.UserDirectory == "casdoor" {
		users = casdoor.NewUserDirectory(casdoor.Config{
			Endpoint:     cfg.Casdoor.Endpoint,
			ClientID:     cfg.Casdoor.ClientID,
			ClientSecret: cfg.Casdoor.ClientSecret,
			Certificate:  cfg.Casdoor.Certificate,
			Organization: cfg.Casdoor.Organization,
			Application:  cfg.Casdoor.Application,
		})
	} else {
		users = postgres.NewUserDirectoryPostgreSQL(db)
	}

	v := validator.New()
	serviceManager := services.NewServiceManager(repo, users, cacheService, publisher, v, slogger)

	refresher := services.NewProgressRefresher(
		serviceManager.Progress(),
		func(studentID string, history *services.StudentHistory) {
			slogger.Debug("Student history refreshed",
				"student_id", studentID,
				"entries", len(history.Entries))
		},
		slogger,
	)
	refresher.Start(context.Background())
	defer refresher.Stop()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, refresher, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting course service", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
