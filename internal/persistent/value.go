// Package persistent は、メモリ上の値を KVStore の1キーに同期し続けるコンテナです。
//
// 起動時は保存済みの値（JSON）を読み込み、無ければ Initial を使います。
// Set / Update が成功するたびに、必ず1回だけ書き戻します。
package persistent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	repo "shoppingcart/internal/repository"

	"github.com/sirupsen/logrus"
)

type options struct {
	log *logrus.Entry
}

type Option func(*options)

func WithLogger(log *logrus.Entry) Option {
	return func(o *options) {
		o.log = log
	}
}

type Value[T any] struct {
	mu    sync.Mutex
	store repo.KVStore
	key   string
	value T
	log   *logrus.Entry
}

// New は key の保存値を読み込んで Value を作る。
// 保存値が壊れていた場合は警告を出して初期値を使う。
// ストアの読み込み自体が失敗した場合だけエラーを返す。
func New[T any](ctx context.Context, store repo.KVStore, key string, initial Initial[T], opts ...Option) (*Value[T], error) {
	o := options{log: logrus.NewEntry(logrus.StandardLogger())}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.WithField("key", key)

	v := &Value[T]{
		store: store,
		key:   key,
		log:   log,
	}

	raw, err := store.GetItem(ctx, key)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		v.value = initial.resolve()
		return v, nil
	case err != nil:
		return nil, fmt.Errorf("read %q: %w", key, err)
	}

	if raw == "" {
		v.value = initial.resolve()
		return v, nil
	}

	var stored T
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.WithError(err).Warn("stored value is not decodable, falling back to initial value")
		v.value = initial.resolve()
		return v, nil
	}

	v.value = stored
	return v, nil
}

func (v *Value[T]) Key() string {
	return v.key
}

// 最後に成功した更新の値
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.value
}

func (v *Value[T]) Set(ctx context.Context, next T) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.commit(ctx, next)
}

// Update は最新の値を fn に渡し、戻り値を新しい値として保存する。
// fn は引数を書き換えずに新しい値を返すこと。
func (v *Value[T]) Update(ctx context.Context, fn func(current T) T) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.commit(ctx, fn(v.value))
}

// 書き込みに失敗したらメモリ上の値は変えない
func (v *Value[T]) commit(ctx context.Context, next T) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode %q: %w", v.key, err)
	}

	if err := v.store.SetItem(ctx, v.key, string(raw)); err != nil {
		return fmt.Errorf("write %q: %w", v.key, err)
	}

	v.value = next
	v.log.WithField("bytes", len(raw)).Debug("value persisted")
	return nil
}
