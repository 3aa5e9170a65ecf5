package repository

import (
	"context"
	"errors"
	"time"

	"shoppingcart/internal/domain/model"
	repo "shoppingcart/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvGormRepository struct {
	db *gorm.DB
}

// DI
func NewKVGormRepository(db *gorm.DB) repo.KVStore {
	return &kvGormRepository{db: db}
}

func (r *kvGormRepository) GetItem(ctx context.Context, key string) (string, error) {
	var entry model.StorageEntry

	err := r.db.WithContext(ctx).
		Where("storage_key = ?", key).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// 同じキーは上書き（upsert）
func (r *kvGormRepository) SetItem(ctx context.Context, key string, value string) error {
	entry := model.StorageEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (r *kvGormRepository) RemoveItem(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("storage_key = ?", key).
		Delete(&model.StorageEntry{}).Error
}

func (r *kvGormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
