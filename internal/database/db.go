package database

import (
	"fmt"
	"time"

	"pazaryeri-kar/internal/config"
	"pazaryeri-kar/internal/logger"
	"pazaryeri-kar/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Init Postgres bağlantısını açar ve tabloları migrate eder
func Init(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.AppEnv == "production" {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql bağlantısı alınamadı: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("Veritabanı bağlantısı başarılı. Migration tamamlandı.", zap.String("driver", "postgres"))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.KVEntry{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}
	return nil
}
