package infra

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vivubot/internal/config"
	"vivubot/internal/models/db_models"
)

// InitPostgresql opens the pool, migrates the schema and closes the pool when
// the app stops.
func InitPostgresql(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}
	if cfg.IsDevelopment() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := connectionPool.AutoMigrate(
		&db_models.ChatSession{},
		&db_models.ChatMessage{},
		&db_models.TravelPlan{},
		&db_models.UserPreferences{},
	); err != nil {
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			ClosePostgresql(connectionPool, logger)
			return nil
		},
	})

	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	} else {
		logger.Info("PostgreSQL database connection closed successfully")
	}
}

func StartTransaction(db *gorm.DB) *gorm.DB {
	return db.Begin()
}

// ReleaseTransaction commits tx when err is nil and rolls it back otherwise.
func ReleaseTransaction(tx *gorm.DB, err error, logger *zap.Logger) error {
	if err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			logger.Error("Error rollback transaction", zap.Error(rollbackErr))
		}
		return err
	}
	if commitErr := tx.Commit().Error; commitErr != nil {
		logger.Error("Error committing transaction", zap.Error(commitErr))
		return commitErr
	}
	return nil
}
