package main

import (
	"fmt"
	"net/http"

	"github.com/DataDog/dd-trace-go/v2/ddtrace/tracer"
	"github.com/gin-gonic/gin"

	"github.com/shopmesh/shopmesh/common/config"
	"github.com/shopmesh/shopmesh/common/logger"
	shopmeshhttp "github.com/shopmesh/shopmesh/http"
	gininterceptors "github.com/shopmesh/shopmesh/http/interceptors/gin"
	"github.com/shopmesh/shopmesh/internal/productservice"
)

const serviceName = "productservice"

const defaultCatalogPath = "data/catalog.yaml"

func main() {
	log, err := logger.Init()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	var cfg productservice.Config
	if err := config.LoadConfig(&cfg, log, config.WithServiceDir(serviceName)); err != nil {
		log.Fatal("loading config", logger.Error(err))
	}

	if err := tracer.Start(tracer.WithService(serviceName)); err != nil {
		log.Fatal("starting tracer", logger.Error(err))
	}
	defer tracer.Stop()

	path := cfg.Catalog.Path
	if path == "" {
		path = defaultCatalogPath
	}
	catalog, err := productservice.LoadCatalog(path)
	if err != nil {
		log.Fatal("loading catalog", logger.Error(err))
	}
	log.Info("catalog loaded", logger.String("path", path), logger.Int("products", len(catalog.All())))

	srv := productservice.NewServer(log, catalog)

	r := gin.New()
	r.Use(gininterceptors.DefaultInterceptors()...)
	srv.Register(r)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("starting product service", logger.String("addr", addr))
	if err := http.ListenAndServe(addr, shopmeshhttp.WrapCORS(r)); err != nil {
		log.Fatal("server stopped", logger.Error(err))
	}
}
