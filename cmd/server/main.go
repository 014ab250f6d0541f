package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elegance/jewelry-catalog/internal/api"
	"github.com/elegance/jewelry-catalog/internal/api/handler"
	"github.com/elegance/jewelry-catalog/internal/core/service"
	"github.com/elegance/jewelry-catalog/internal/infrastructure/config"
	mongodb "github.com/elegance/jewelry-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/elegance/jewelry-catalog/internal/infrastructure/db/redis"
	"github.com/elegance/jewelry-catalog/internal/infrastructure/upload"
	"github.com/elegance/jewelry-catalog/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

//	@title						Jewelry Catalog API
//	@version					1.0
//	@description				Catalog, admin approval and store status endpoints for the Elegance Jewelry storefront.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "jewelry-catalog",
	})
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting jewelry catalog api")

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	admins := mongodb.NewAdminRepository(db)
	products := mongodb.NewProductRepository(db)
	storeStatus := mongodb.NewStoreStatusRepository(db)
	if err := mongodb.EnsureIndexes(ctx, admins, products); err != nil {
		return err
	}

	images, err := upload.NewDiskStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		return err
	}

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	revocations := redisdb.NewRevocationList(rdb)
	authSvc := service.NewAuthService(admins, tokens, logger.Component("auth"))

	if _, err := authSvc.SeedMainAdmin(ctx, cfg.Seed.Email, cfg.Seed.Password, cfg.Seed.Name); err != nil {
		return fmt.Errorf("seed main admin: %w", err)
	}

	router := api.NewRouter(api.Services{
		Auth:        authSvc,
		Tokens:      tokens,
		Revocations: revocations,
		Admins:      service.NewAdminService(admins, revocations, tokens.TTL(), logger.Component("admin")),
		Products:    service.NewProductService(products, logger.Component("product")),
		Store:       service.NewStoreService(storeStatus, logger.Component("store")),
		Images:      images,
		Dependencies: []handler.Dependency{
			handler.MongoDependency(db),
			handler.RedisDependency(rdb),
		},
	}, api.Options{
		MetricsEnabled: true,
		UploadDir:      cfg.Upload.Dir,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		CORSOrigins:    cfg.CORSOrigins,
	}, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	log.Info().Str("address", srv.Addr).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("server exited")
	return nil
}
