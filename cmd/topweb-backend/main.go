package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"topweb-backend/internal/config"
	"topweb-backend/internal/database"
	httpapi "topweb-backend/internal/http"
	"topweb-backend/internal/repository"
	"topweb-backend/internal/service"
	"topweb-backend/internal/store"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)

	clientsRepo := repository.NewPostgresClientsRepository(db)
	reportsRepo := repository.NewPostgresReportsRepository(db)
	inquiriesRepo := repository.NewPostgresInquiriesRepository(db)
	chatsRepo := repository.NewPostgresChatsRepository(db)
	generationsRepo := repository.NewPostgresAIGenerationsRepository(db)
	usersRepo := repository.NewPostgresUsersRepository(db)
	whiteLabelRepo := repository.NewPostgresWhiteLabelRepository(db)

	openai := service.NewOpenAIClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
	chatbot := service.NewChatbotService(openai, logger)
	mailer := service.NewSMTPMailer(&cfg.SMTP, logger)
	metrics := service.NewRandomMetricsSource(rand.New(rand.NewSource(time.Now().UnixNano())))
	gmb := service.NewGMBService(clientsRepo, reportsRepo, metrics, logger)
	reports := service.NewReportService(clientsRepo, reportsRepo, metrics, gmb, mailer,
		cfg.Reports.DashboardURL, logger)

	router := httpapi.NewRouter(logger)
	router.RegisterPublicRoutes(
		httpapi.NewChatHandler(chatbot, chatsRepo, kv, logger),
		httpapi.NewContactHandler(inquiriesRepo, logger),
	)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(usersRepo, logger))
	router.RegisterAIRoutes(httpapi.NewAIHandler(openai, generationsRepo, cfg.OpenAI.Model, logger))
	router.RegisterDashboardRoutes(httpapi.NewDashboardHandler(clientsRepo, reportsRepo, logger))
	router.RegisterAdminRoutes(httpapi.NewAdminHandler(clientsRepo, reportsRepo, inquiriesRepo, reports, logger))
	router.RegisterWhiteLabelRoutes(httpapi.NewWhiteLabelHandler(whiteLabelRepo, logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Reports.ScheduleEnabled {
		scheduler := service.NewReportScheduler(reports, logger)
		go scheduler.Start(ctx)
	}

	srv := service.NewServer(cfg.HTTP.Addr, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		logger.Error("HTTP server stopped", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
	database.Close(db)
}
