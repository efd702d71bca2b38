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
	"github.com/shopmesh/shopmesh/internal/userservice"
)

const serviceName = "userservice"

func main() {
	log, err := logger.Init()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	var cfg userservice.Config
	if err := config.LoadConfig(&cfg, log, config.WithServiceDir(serviceName)); err != nil {
		log.Fatal("loading config", logger.Error(err))
	}

	if err := tracer.Start(tracer.WithService(serviceName)); err != nil {
		log.Fatal("starting tracer", logger.Error(err))
	}
	defer tracer.Stop()

	srv := userservice.NewServer(log, userservice.NewStore())

	r := gin.New()
	r.Use(gininterceptors.DefaultInterceptors()...)
	srv.Register(r)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("starting user service", logger.String("addr", addr))
	if err := http.ListenAndServe(addr, shopmeshhttp.WrapCORS(r)); err != nil {
		log.Fatal("server stopped", logger.Error(err))
	}
}
