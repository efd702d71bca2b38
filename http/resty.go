package http

import (
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/shopmesh/shopmesh/common/logger"
	interceptors "github.com/shopmesh/shopmesh/http/interceptors/resty"
)

func NewRestyWithClient(client *http.Client, log *logger.Logger, opt ...interceptors.InterceptorOpt) *resty.Client {
	restyClient := resty.NewWithClient(client)
	interceptors.InjectInterceptors(restyClient, opt...)

	if log != nil {
		restyClient.SetLogger(log)
	}
	return restyClient
}
