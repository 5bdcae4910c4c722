// Command hellopost runs the accounts/posts HTTP API server.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dropDatabas3/hellopost/internal/cache"
	"github.com/dropDatabas3/hellopost/internal/config"
	"github.com/dropDatabas3/hellopost/internal/consistency"
	internalhttp "github.com/dropDatabas3/hellopost/internal/http"
	"github.com/dropDatabas3/hellopost/internal/http/controllers"
	"github.com/dropDatabas3/hellopost/internal/http/router"
	"github.com/dropDatabas3/hellopost/internal/http/services"
	"github.com/dropDatabas3/hellopost/internal/observability/logger"
	"github.com/dropDatabas3/hellopost/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// .env is optional; system environment still applies without it.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Logger is not up yet.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "hellopost",
	})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The store handle is owned here: acquired once, passed down, released
	// on shutdown.
	st, err := store.Open(ctx, storeConfig(cfg))
	if err != nil {
		log.Fatal("store open failed", logger.Err(err))
	}
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(cctx); err != nil {
			log.Warn("store close failed", logger.Err(err))
		}
	}()
	log.Info("store connected", logger.Driver(st.Name()))

	cacheClient, err := cache.New(cacheConfig(cfg))
	if err != nil {
		log.Fatal("cache init failed", logger.Err(err))
	}
	defer func() { _ = cacheClient.Close() }()

	coordinator := consistency.New(st.Accounts(), st.Posts())

	accountSvc := services.NewAccountService(services.AccountDeps{
		Accounts:    st.Accounts(),
		Coordinator: coordinator,
		Cache:       cacheClient,
		CacheTTL:    cfg.CacheTTL(),
	})
	postSvc := services.NewPostService(services.PostDeps{
		Posts:    st.Posts(),
		Cache:    cacheClient,
		CacheTTL: cfg.CacheTTL(),
	})

	metricsHandler, err := internalhttp.RegisterMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("metrics registration failed", logger.Err(err))
	}

	handler := router.New(router.Deps{
		Accounts:           controllers.NewAccountsController(accountSvc, postSvc),
		Posts:              controllers.NewPostsController(postSvc),
		Health:             controllers.NewHealthController(st),
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		MetricsHandler:     metricsHandler,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.Any("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Warn("server shutdown failed", logger.Err(err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", logger.Err(err))
		}
	}
}

func storeConfig(cfg *config.Config) store.Config {
	var sc store.Config
	sc.Driver = cfg.Storage.Driver
	sc.Mongo.URI = cfg.Storage.Mongo.URI
	sc.Mongo.Database = cfg.Storage.Mongo.Database
	return sc
}

func cacheConfig(cfg *config.Config) cache.Config {
	var cc cache.Config
	cc.Kind = cfg.Cache.Kind
	cc.DefaultTTL = cfg.CacheTTL()
	cc.Redis.Addr = cfg.Cache.Redis.Addr
	cc.Redis.Password = cfg.Cache.Redis.Password
	cc.Redis.DB = cfg.Cache.Redis.DB
	cc.Redis.Prefix = cfg.Cache.Redis.Prefix
	return cc
}
