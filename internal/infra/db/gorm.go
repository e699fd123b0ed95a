package db

import (
	"fmt"
	"log/slog"

	"storefront/internal/config"
	"storefront/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.IsProd() {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return gdb, nil
}

// Migrate はテーブルを作成・更新する。
func Migrate(gdb *gorm.DB, log *slog.Logger) error {
	if err := gdb.AutoMigrate(
		&model.Product{},
		&model.KVSlot{},
		&model.CartEvent{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	log.Info("database migrated")
	return nil
}
