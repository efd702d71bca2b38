// Package clients holds the storefront's typed clients for the user,
// product and order services. Every operation takes the caller's forwarded
// header set, applies it to the outbound request, and returns the forwarded
// headers extracted from the response so multi-hop requests can chain them.
package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/shopmesh/shopmesh/common/headers"
)

// Config carries the base URLs of the sibling services. Each base URL is the
// API root including the trailing slash, e.g. "http://user-service:8600/api/user/".
type Config struct {
	UserBaseURL    string `mapstructure:"userBaseUrl"`
	ProductBaseURL string `mapstructure:"productBaseUrl"`
	OrderBaseURL   string `mapstructure:"orderBaseUrl"`
}

func baseURL(raw string) string {
	if !strings.HasSuffix(raw, "/") {
		return raw + "/"
	}
	return raw
}

// send issues a single outbound request. The forwarded headers go on first;
// the credential, when present, is set afterwards so an explicit
// Authorization always wins over a propagated one. A transport-level failure
// is marked ErrUnreachable; callers interpret the response status themselves.
func send(
	ctx context.Context,
	rc *resty.Client,
	method, url string,
	form map[string]string,
	fwd headers.ForwardedHeaderSet,
	credential string,
) (*resty.Response, headers.ForwardedHeaderSet, error) {
	req := rc.R().SetContext(ctx)
	for name, value := range fwd {
		req.SetHeader(name, value)
	}
	if credential != "" {
		req.SetHeader("Authorization", "Basic "+credential)
	}
	if form != nil {
		req.SetFormData(form)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, nil, errors.Mark(errors.Wrapf(err, "%s %s", method, url), ErrUnreachable)
	}
	return resp, headers.Extract(resp.Header()), nil
}

func decode(resp *resty.Response, out interface{}) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return errors.Mark(errors.Wrap(err, "decoding response"), ErrDecode)
	}
	return nil
}

func remoteError(resp *resty.Response) error {
	return &RemoteError{Status: resp.StatusCode(), Body: string(resp.Body())}
}

func isSuccess(resp *resty.Response) bool {
	return resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices
}
