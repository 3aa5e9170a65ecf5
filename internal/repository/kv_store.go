package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 文字列キーで文字列を保存する永続ストアの約束。
// localStorage相当（memory / postgres / redis）。
type KVStore interface {
	// 無ければErrNotFound
	GetItem(ctx context.Context, key string) (string, error)

	// 既存値は上書き
	SetItem(ctx context.Context, key string, value string) error

	// 無くてもエラーにしない
	RemoveItem(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}
