package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	bookingSuccessHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/booking_success"
	bulkUpdateStatusHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/bulk_update_status"
	createBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_booking"
	createFeatureHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_feature"
	createRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_room"
	getBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_booking"
	getRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_room"
	listAdminRoomsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_admin_rooms"
	listBookingsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_bookings"
	listFeaturesHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_features"
	listRoomsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_rooms"
	updateBookingStatusHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/update_booking_status"
	updateRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/update_room"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomsCache "github.com/m04kA/SMC-RoomBookingService/internal/infra/cache/rooms"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookingvalidator"
	bookingsService "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	roomsService "github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
	createBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/migrator"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-RoomBookingService...")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	log.Info("Server clock: %s", location)

	// Метрики (nil, если выключены - все методы безопасны для nil)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Миграции при старте (опционально)
	if cfg.Database.AutoMigrate {
		if err := migrator.Run(cfg.Database.MigrationsPath, cfg.Database.URL(), migrator.ActionUp, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxAttempts(cfg.Database.TxMaxAttempts))

	// Redis (кэш каталога). Интерфейс остаётся nil, если кэш выключен или недоступен.
	var cacheClient roomsCache.Client
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis unavailable at %s, catalog cache disabled: %v", cfg.Redis.Addr, err)
			_ = redisClient.Close()
		} else {
			defer redisClient.Close()
			cacheClient = redisClient
			log.Info("Redis connected (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
		}
	}
	catalogCache := roomsCache.NewCache(cacheClient, time.Duration(cfg.Redis.CacheTTL)*time.Second, metricsCollector, log)

	// Доставка уведомлений
	var sender createBookingUC.Notifier
	if cfg.RabbitMQ.Enabled {
		publisher, err := notifier.NewPublisher(
			cfg.RabbitMQ.URL,
			cfg.RabbitMQ.Queue,
			time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		sender = publisher
		log.Info("Notification publisher initialized (queue=%s)", cfg.RabbitMQ.Queue)
	} else {
		sender = notifier.NewLogSender(log)
		log.Warn("RabbitMQ disabled, confirmations are only logged")
	}

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	roomRepository := roomRepo.NewRepository(wrappedDB)

	// Сервисы
	validator := bookingvalidator.NewValidator(bookingRepository, domain.DurationLimits{
		Min: cfg.Booking.MinDuration(),
		Max: cfg.Booking.MaxDuration(),
	})
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		validator,
		txMgr,
		metricsCollector,
		log,
		location,
		cfg.Booking.PageSize,
	)
	roomSvc := roomsService.NewService(
		roomRepository,
		bookingRepository,
		catalogCache,
		txMgr,
		log,
		location,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		validator,
		sender,
		txMgr,
		metricsCollector,
		log,
		location,
		cfg.Booking.NotificationRequired,
	)

	// Handlers
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	getRoom := getRoomHandler.NewHandler(roomSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	bookingSuccess := bookingSuccessHandler.NewHandler()

	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	bulkConfirm := bulkUpdateStatusHandler.NewHandler(bookingSvc, domain.StatusConfirmed, log)
	bulkCancel := bulkUpdateStatusHandler.NewHandler(bookingSvc, domain.StatusCancelled, log)

	listAdminRooms := listAdminRoomsHandler.NewHandler(roomSvc, log)
	createRoom := createRoomHandler.NewHandler(roomSvc, log)
	updateRoom := updateRoomHandler.NewHandler(roomSvc, log)
	listFeatures := listFeaturesHandler.NewHandler(roomSvc, log)
	createFeature := createFeatureHandler.NewHandler(roomSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId:[0-9]+}", getRoom.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/success", bookingSuccess.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (Bearer JWT с claim staff=true)
	// ============================================================

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Authenticate, middleware.RequireStaff)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/bulk-confirm", bulkConfirm.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/bulk-cancel", bulkCancel.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Каталог ---
	admin.HandleFunc("/rooms", listAdminRooms.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/rooms", createRoom.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/rooms/{roomId:[0-9]+}", updateRoom.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/features", listFeatures.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/features", createFeature.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
