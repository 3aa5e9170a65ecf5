package repository

import (
	"context"
	"errors"
	"time"

	repo "shoppingcart/internal/repository"

	"github.com/go-redis/redis/v8"
)

// Redisに文字列のまま保存するストア。
type KVRedisRepository struct {
	client *redis.Client
}

// redisAddr は "redis://..." 形式か "host:port"
func NewKVRedisRepository(redisAddr string) *KVRedisRepository {
	opts, err := redis.ParseURL(redisAddr)
	if err != nil {
		opts = &redis.Options{
			Addr:         redisAddr,
			MinIdleConns: 1,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		}
	}

	return &KVRedisRepository{client: redis.NewClient(opts)}
}

func (r *KVRedisRepository) GetItem(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *KVRedisRepository) SetItem(ctx context.Context, key string, value string) error {
	// 有効期限なし
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *KVRedisRepository) RemoveItem(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *KVRedisRepository) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.client.Ping(pingCtx).Err()
}

func (r *KVRedisRepository) Close() error {
	return r.client.Close()
}

var _ repo.KVStore = (*KVRedisRepository)(nil)
