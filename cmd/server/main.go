package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pazaryeri-kar/internal/apperrors"
	"pazaryeri-kar/internal/audit"
	"pazaryeri-kar/internal/config"
	"pazaryeri-kar/internal/database"
	"pazaryeri-kar/internal/events"
	"pazaryeri-kar/internal/logger"
	"pazaryeri-kar/internal/metrics"
	"pazaryeri-kar/internal/platform"
	"pazaryeri-kar/internal/storage"
	"pazaryeri-kar/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.InitMetrics()

	var (
		kv  storage.KV
		rec audit.Recorder
	)
	switch cfg.StorageDriver {
	case "postgres":
		db, err := database.Init(cfg)
		if err != nil {
			logger.Log.Fatal("Veritabanı başlatılamadı", zap.Error(err))
		}
		kv = storage.NewGorm(db)
		rec = audit.NewGormRecorder(db)
	default:
		kv = storage.NewMemory()
		rec = audit.NewMemoryRecorder(audit.MaxLimit)
	}

	origin := uuid.NewString()
	broker := events.NewBroker()
	defer broker.Close()

	var pub events.Publisher = broker
	if cfg.RedisURL != "" {
		client, err := events.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Log.Fatal("Redis istemcisi oluşturulamadı", zap.Error(err))
		}
		defer client.Close()

		bridge := events.NewRedisBridge(client, cfg.RedisChannel, broker, origin)
		pub = bridge
		go func() {
			if err := bridge.Run(ctx); err != nil {
				logger.Error("Redis köprüsü durdu", err)
			}
		}()
	}

	if cfg.StorageDriver == "postgres" {
		// Başka örneklerin doğrudan tabloya yazdıklarını yakalamak için
		w := events.NewWatcher(kv, broker, time.Duration(cfg.PollInterval)*time.Second, "tr_", "hb_", platform.ActiveKey)
		if _, err := w.Start(ctx); err != nil {
			logger.Error("Depo yoklaması başlatılamadı", err)
		}
	}

	def, err := platform.Parse(cfg.DefaultPlatform)
	if err != nil {
		logger.Warn("DEFAULT_PLATFORM geçersiz, trendyol kullanılıyor", zap.String("deger", cfg.DefaultPlatform))
		def = platform.Trendyol
	}

	s := store.New(kv, pub, rec, origin)
	if err := s.Load(ctx, def); err != nil {
		logger.Log.Fatal("Kayıtlar yüklenemedi", zap.Error(err))
	}

	changes, unsubscribe := broker.Subscribe(64)
	defer unsubscribe()
	go s.Watch(ctx, changes)

	app := fiber.New(fiber.Config{
		ErrorHandler: apperrors.FiberErrorHandler,
		BodyLimit:    cfg.MaxUploadMB * 1024 * 1024,
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	setupRoutes(app, s, broker, rec)

	go func() {
		<-ctx.Done()
		logger.Info("Sunucu kapatılıyor")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Sunucu düzgün kapatılamadı", err)
		}
	}()

	logger.Info("Sunucu başlatılıyor", zap.String("port", cfg.HTTPPort), zap.String("depo", cfg.StorageDriver), zap.String("platform", string(s.Platform())))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}
