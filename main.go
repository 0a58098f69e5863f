package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "flightschool/internal/config"
	"flightschool/internal/db"
	router "flightschool/internal/http"
	"flightschool/internal/http/handlers"
	"flightschool/internal/idempotency"
	"flightschool/internal/notify"
	"flightschool/internal/repositories"
	"flightschool/internal/services"
	"flightschool/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	utils.ConfigureLogger(env.LogLevel, env.LogFormat)
	log := utils.Logger

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	if gin.Mode() == gin.ReleaseMode && env.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required in release mode")
	}

	sqlDB, err := intconfig.ConnectDB(env.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer sqlDB.Close()

	if env.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := db.EnsureSchema(ctx, sqlDB)
		cancel()
		if err != nil {
			log.WithError(err).Fatal("schema migration failed")
		}
		log.Info("schema up to date")
	}

	var idem idempotency.Store
	rdb, err := intconfig.ConnectRedis(env.RedisURL)
	if err != nil {
		log.WithError(err).Fatal("redis connection failed")
	}
	if rdb != nil {
		defer rdb.Close()
		idem = idempotency.NewRedisStore(rdb)
	} else {
		log.Warn("REDIS_URL not set; Idempotency-Key headers are ignored")
	}

	store := repositories.NewSQLStore(sqlDB)
	auth := services.AuthService{Store: store, Secret: []byte(env.JWTSecret), TTL: env.JWTTTL}

	r := router.NewRouter(env, router.Deps{
		Handlers: &handlers.Handlers{
			Store:   store,
			Mailer:  notify.NewSender(env.EmailEndpoint, env.EmailTimeout),
			Auth:    auth,
			DueDays: env.InvoiceDueDays,
			Ping:    sqlDB.PingContext,
		},
		Tokens:      auth,
		Idempotency: idem,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server shutdown failed")
	}

	log.Info("server stopped")
}
