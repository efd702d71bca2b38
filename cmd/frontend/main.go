package main

import (
	"fmt"
	"net/http"
	"time"

	ddhttp "github.com/DataDog/dd-trace-go/contrib/net/http/v2"
	"github.com/DataDog/dd-trace-go/v2/ddtrace/tracer"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/shopmesh/shopmesh/common/config"
	"github.com/shopmesh/shopmesh/common/logger"
	shopmeshhttp "github.com/shopmesh/shopmesh/http"
	gininterceptors "github.com/shopmesh/shopmesh/http/interceptors/gin"
	"github.com/shopmesh/shopmesh/internal/frontend"
	"github.com/shopmesh/shopmesh/internal/frontend/clients"
	"github.com/shopmesh/shopmesh/internal/frontend/session"
)

const serviceName = "frontend"

func main() {
	log, err := logger.Init()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	var cfg frontend.Config
	if err := config.LoadConfig(&cfg, log, config.WithServiceDir(serviceName)); err != nil {
		log.Fatal("loading config", logger.Error(err))
	}

	if err := tracer.Start(tracer.WithService(serviceName)); err != nil {
		log.Fatal("starting tracer", logger.Error(err))
	}
	defer tracer.Stop()

	timeout := 10 * time.Second
	if cfg.HTTP.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	}
	httpClient := ddhttp.WrapClient(&http.Client{Timeout: timeout})
	rc := shopmeshhttp.NewRestyWithClient(httpClient, log)

	store := newSessionStore(cfg, log)
	srv := frontend.NewServer(
		log,
		store,
		clients.NewProductClient(cfg.Services.ProductBaseURL, rc),
		clients.NewUserClient(cfg.Services.UserBaseURL, rc),
		clients.NewOrderClient(cfg.Services.OrderBaseURL, rc),
	)

	r := gin.New()
	r.Use(gininterceptors.DefaultInterceptors()...)
	srv.Register(r)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("starting frontend", logger.String("addr", addr))
	if err := http.ListenAndServe(addr, shopmeshhttp.WrapCORS(r)); err != nil {
		log.Fatal("server stopped", logger.Error(err))
	}
}

func newSessionStore(cfg frontend.Config, log *logger.Logger) session.Store {
	if !cfg.Redis.Enabled {
		return session.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	store, err := session.NewRedisStore(session.RedisConfig{
		Client: client,
		TTL:    time.Duration(cfg.Redis.SessionTTLMinutes) * time.Minute,
	})
	if err != nil {
		log.Fatal("building session store", logger.Error(err))
	}
	log.Info("using redis session store", logger.String("addr", cfg.Redis.Addr))
	return store
}
