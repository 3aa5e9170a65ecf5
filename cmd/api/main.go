package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shoppingcart/internal/config"
	"shoppingcart/internal/handler"
	"shoppingcart/internal/infra/db"
	infraRepo "shoppingcart/internal/infra/repository"
	"shoppingcart/internal/logger"
	repo "shoppingcart/internal/repository"
	"shoppingcart/internal/server"
	"shoppingcart/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	//.envは任意
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.GoEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.WithError(err).Fatal("server exited with error")
	}
	log.Info("server stopped")
}

// run は ctx が終わるまでサーバーを動かす。
// どの経路で戻ってもストアは閉じる。
func run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	//ストア生成（STORE_DRIVER）
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()
	log.WithField("driver", cfg.StoreDriver).Info("store ready")

	//Usecase生成（保存済みカートを復元）
	cartUC, err := usecase.NewCartUsecase(ctx, store, cfg.CartStorageKey, log.WithField("usecase", "cart"))
	if err != nil {
		return fmt.Errorf("restore cart: %w", err)
	}
	log.WithFields(logrus.Fields{
		"key":           cfg.CartStorageKey,
		"items":         len(cartUC.CartItems()),
		"cart_quantity": cartUC.CartQuantity(),
	}).Info("cart restored")

	//Handler生成
	cartH := handler.NewCartHandler(cartUC, log.WithField("handler", "cart"))
	healthH := handler.NewHealthHandler(store, log.WithField("handler", "health"))

	//Server起動
	e := server.New(log, cfg.JWTSecret, cartH, healthH)
	log.WithField("addr", cfg.Addr()).Info("starting http server")
	if err := server.Start(ctx, e, cfg.Addr()); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (repo.KVStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		closeFn := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		if err := db.Migrate(gormDB); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return infraRepo.NewKVGormRepository(gormDB), closeFn, nil

	case config.StoreDriverRedis:
		store := infraRepo.NewKVRedisRepository(cfg.RedisAddr)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	default:
		return infraRepo.NewKVMemoryRepository(), func() {}, nil
	}
}
