package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solomonczyk/autoservice/config"
	repository "github.com/solomonczyk/autoservice/internal/database/postgres"
	"github.com/solomonczyk/autoservice/internal/service"
	"github.com/solomonczyk/autoservice/internal/transport"
	"github.com/solomonczyk/autoservice/internal/transport/middleware"
	"github.com/solomonczyk/autoservice/internal/worker"

	"github.com/solomonczyk/autoservice/pkg/broadcast"
	"github.com/solomonczyk/autoservice/pkg/lock"
	"github.com/solomonczyk/autoservice/pkg/postgres"
	"github.com/solomonczyk/autoservice/pkg/redis"
	"github.com/solomonczyk/autoservice/pkg/telegram"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis: блокировки слотов, канал обновлений, дедупликация напоминаний
	redisClient := redis.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository(db)
	clientRepo := repository.NewClientRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	shopRepo := repository.NewShopRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize Telegram bot
	var notifier service.Notifier
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		bot, err := telegram.NewBot(cfg.Telegram.BotToken)
		if err != nil {
			logrus.Errorf("Failed to initialize Telegram bot: %v. Continuing without notifications...", err)
		} else {
			notifier = bot
			logrus.Info("Telegram bot initialized")
		}
	} else {
		logrus.Warn("Telegram bot disabled, notifications will not be sent")
	}

	// Initialize slot locking and the updates channel
	slotLocker := lock.NewRedisLock(redisClient)
	broadcaster := broadcast.NewRedisBroadcast(redisClient)
	publisher := service.NewBroadcastAdapter(broadcaster)

	// Initialize services
	slotService := service.NewSlotService(appointmentRepo, shopRepo, cfg.Booking.SlotStepMinutes)
	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		clientRepo,
		serviceRepo,
		slotService,
		slotLocker,
		cfg.Booking.LockTTL,
		publisher,
		notifier,
	)
	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.Expiration)
	clientService := service.NewClientService(clientRepo, appointmentRepo)
	catalogService := service.NewCatalogService(serviceRepo, shopRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize reminder worker
	if notifier != nil {
		reminderWorker := worker.NewReminderWorker(
			appointmentRepo,
			worker.NewRedisReminderDedup(redisClient),
			notifier,
			cfg.Worker.ReminderInterval,
			cfg.Worker.ReminderLead,
		)
		go reminderWorker.Start(ctx)
		logrus.Info("Reminder worker started")
	}

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService)
	slotHandler := transport.NewSlotHandler(slotService)
	appointmentHandler := transport.NewAppointmentHandler(appointmentService)
	catalogHandler := transport.NewCatalogHandler(catalogService)
	clientHandler := transport.NewClientHandler(clientService)
	streamHandler := transport.NewStreamHandler(broadcaster)
	authMW := middleware.NewAuthMiddleware(authService)

	// Setup HTTP server
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		handler := transport.InitRoutes(
			authHandler,
			slotHandler,
			appointmentHandler,
			catalogHandler,
			clientHandler,
			streamHandler,
			authMW,
		)
		if err := srv.Run(cfg, handler); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
