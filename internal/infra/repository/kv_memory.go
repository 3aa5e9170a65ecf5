package repository

import (
	"context"
	"sync"

	repo "shoppingcart/internal/repository"
)

// メモリ上に保持する簡易ストア（開発・テスト用）。
type KVMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewKVMemoryRepository() *KVMemoryRepository {
	return &KVMemoryRepository{items: make(map[string]string)}
}

func (r *KVMemoryRepository) GetItem(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.items[key]
	if !ok {
		return "", repo.ErrNotFound
	}
	return v, nil
}

func (r *KVMemoryRepository) SetItem(ctx context.Context, key string, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[key] = value
	return nil
}

func (r *KVMemoryRepository) RemoveItem(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, key)
	return nil
}

func (r *KVMemoryRepository) Ping(ctx context.Context) error {
	return nil
}

var _ repo.KVStore = (*KVMemoryRepository)(nil)
