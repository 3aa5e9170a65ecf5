package db

import (
	"shoppingcart/internal/config"
	"shoppingcart/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// KVストア用のテーブルを作る
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.StorageEntry{})
}
