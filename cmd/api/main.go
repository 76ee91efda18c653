package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cafe-storefront/internal/config"
	"cafe-storefront/internal/db"
	"cafe-storefront/internal/httpserver"
	"cafe-storefront/internal/logger"
	deliveryrepo "cafe-storefront/internal/repository/delivery"
	orderrepo "cafe-storefront/internal/repository/order"
	otprepo "cafe-storefront/internal/repository/otp"
	productrepo "cafe-storefront/internal/repository/product"
	settingsrepo "cafe-storefront/internal/repository/settings"
	userrepo "cafe-storefront/internal/repository/user"
	authsvc "cafe-storefront/internal/service/auth"
	cartsvc "cafe-storefront/internal/service/cart"
	catalogsvc "cafe-storefront/internal/service/catalog"
	ordersvc "cafe-storefront/internal/service/order"
	settingssvc "cafe-storefront/internal/service/settings"
	"cafe-storefront/internal/sms"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, log)
	orderRepo := orderrepo.NewPostgres(dbpool, log)
	userRepo := userrepo.NewPostgres(dbpool, log)
	deliveryRepo := deliveryrepo.NewPostgres(dbpool)
	settingsRepo := settingsrepo.NewPostgres(dbpool)

	var otpStore otprepo.Store
	if cfg.RedisAddr != "" {
		otpStore = otprepo.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		log.Info("otp store: redis", zap.String("addr", cfg.RedisAddr))
	} else {
		otpStore = otprepo.NewMemory()
		log.Info("otp store: in-memory")
	}

	sender := sms.NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	authService := authsvc.New(otpStore, sender, userRepo, cfg.JWTSecret, cfg.OTPTTL)

	catalogService := catalogsvc.New(productRepo)
	orderService := ordersvc.New(orderRepo, deliveryRepo)
	settingsService := settingssvc.New(settingsRepo)

	cartStorage, err := cartsvc.NewFileStorage(cfg.CartDataDir)
	if err != nil {
		log.Fatal("init cart storage", zap.Error(err))
	}
	cartService := cartsvc.New(cartStorage, orderService, log)

	srv, err := httpserver.New(cfg.HTTPAddr, log, dbpool, httpserver.Deps{
		Auth:     authService,
		Catalog:  catalogService,
		Cart:     cartService,
		Orders:   orderService,
		Settings: settingsService,
		Users:    userRepo,
		Delivery: deliveryRepo,
	})
	if err != nil {
		log.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		log.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	} else {
		log.Info("server stopped")
	}
}
