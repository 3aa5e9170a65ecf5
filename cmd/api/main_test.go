package main

import (
	"context"
	"testing"
	"time"

	"shoppingcart/internal/config"
	"shoppingcart/internal/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver string) config.Config {
	return config.Config{
		Port:           "0",
		StoreDriver:    driver,
		CartStorageKey: usecase.DefaultStorageKey,
		GoEnv:          "dev",
		LogLevel:       "info",
	}
}

// カートの読み込みに失敗しても redis の接続は閉じる
func TestRun_ClosesStoreWhenRestoreFails(t *testing.T) {
	mr := miniredis.RunT(t)
	// 文字列以外の型にしておくと GET が WRONGTYPE で失敗する
	mr.HSet(usecase.DefaultStorageKey, "field", "value")

	cfg := testConfig(config.StoreDriverRedis)
	cfg.RedisAddr = mr.Addr()
	log, _ := test.NewNullLogger()

	err := run(context.Background(), cfg, log)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "restore cart")
	assert.Eventually(t, func() bool {
		return mr.CurrentConnectionCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRun_OpenStoreFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(config.StoreDriverRedis)
	cfg.RedisAddr = addr
	log, _ := test.NewNullLogger()

	err := run(context.Background(), cfg, log)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open store")
}

func TestRun_StopsOnCancel(t *testing.T) {
	log, hook := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig(config.StoreDriverMemory), log) }()

	assert.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Message == "starting http server" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
