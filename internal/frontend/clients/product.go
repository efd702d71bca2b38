package clients

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/shopmesh/shopmesh/common/headers"
	"github.com/shopmesh/shopmesh/internal/model"
)

// ProductClient talks to the product service. All of its operations are
// anonymous: no credential is ever attached, even when the session has one.
type ProductClient struct {
	base string
	http *resty.Client
}

func NewProductClient(base string, rc *resty.Client) *ProductClient {
	return &ProductClient{base: baseURL(base), http: rc}
}

// List fetches the whole catalog. On transport failure the error is marked
// ErrUnreachable; the listing fallback to an empty catalog is the caller's
// decision, not this client's.
func (c *ProductClient) List(ctx context.Context, fwd headers.ForwardedHeaderSet) ([]model.Product, headers.ForwardedHeaderSet, error) {
	resp, respFwd, err := send(ctx, c.http, http.MethodGet, c.base+"all", nil, fwd, "")
	if err != nil {
		return nil, nil, err
	}
	if !isSuccess(resp) {
		return nil, respFwd, remoteError(resp)
	}

	var body struct {
		Results []model.Product `json:"results"`
	}
	if err := decode(resp, &body); err != nil {
		return nil, respFwd, err
	}
	return body.Results, respFwd, nil
}

// Get fetches a single product by id. Unlike List, an unreachable product
// service propagates the error; there is no empty fallback for a detail view.
func (c *ProductClient) Get(ctx context.Context, id string, fwd headers.ForwardedHeaderSet) (model.Product, headers.ForwardedHeaderSet, error) {
	resp, respFwd, err := send(ctx, c.http, http.MethodGet, c.base+id, nil, fwd, "")
	if err != nil {
		return model.Product{}, nil, err
	}
	if !isSuccess(resp) {
		return model.Product{}, respFwd, remoteError(resp)
	}

	var body struct {
		Result model.Product `json:"result"`
	}
	if err := decode(resp, &body); err != nil {
		return model.Product{}, respFwd, err
	}
	return body.Result, respFwd, nil
}
