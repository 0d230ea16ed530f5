// HTTP API + realtime-шлюз
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/glkeru/safedrive/internal/api"
	auth "github.com/glkeru/safedrive/internal/auth"
	db "github.com/glkeru/safedrive/internal/db"
	interf "github.com/glkeru/safedrive/internal/interfaces"
	realtime "github.com/glkeru/safedrive/internal/realtime"
	services "github.com/glkeru/safedrive/internal/services"
	otel "github.com/glkeru/safedrive/observability/otel"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	// log
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// config
	port := os.Getenv("SAFEDRIVE_PORT")
	if port == "" {
		panic("env SAFEDRIVE_PORT is not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// tracing
	shutdownTracer := otel.InitTracer(ctx)
	defer shutdownTracer()

	// database
	storage, err := db.NewSafeDB()
	if err != nil {
		panic(err)
	}
	defer storage.Close(context.Background())

	// cache
	var cache interf.CacheStorage
	cache, err = db.NewCacheService()
	if err != nil {
		logger.Error(err.Error())
		cache = nil
	}

	// realtime
	hub := realtime.NewHub(logger)
	notifier, err := realtime.NewRedisNotifier(logger)
	if err != nil {
		panic(err)
	}
	defer notifier.Close()
	go func() {
		err := notifier.Run(ctx, hub)
		if err != nil {
			logger.Error("realtime", zap.Error(err))
		}
	}()

	// auth
	tokens, err := auth.NewTokens()
	if err != nil {
		panic(err)
	}

	// services
	userserv := services.NewUserService(logger, storage, storage, cache)
	authserv := services.NewAuthService(logger, userserv, storage, tokens)
	tripserv := services.NewTripService(logger, storage, storage, cache, notifier)
	rewardserv := services.NewRewardService(logger, storage, cache, notifier)
	emergencyserv := services.NewEmergencyService(logger, storage, storage, notifier)

	// api handlers
	r := api.NewHandler(authserv, userserv, tripserv, rewardserv, emergencyserv, hub, tokens, logger)
	srv := &http.Server{
		Handler:      otelhttp.NewHandler(r, "safedrive"),
		Addr:         ":" + port,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	go srv.ListenAndServe()

	// shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	cancel()
	timeout, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	err = srv.Shutdown(timeout)
	if err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
