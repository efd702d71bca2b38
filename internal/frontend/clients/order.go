package clients

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/shopmesh/shopmesh/common/headers"
	"github.com/shopmesh/shopmesh/internal/model"
)

// OrderClient talks to the order service. Every operation is authenticated:
// the session credential is attached as "Authorization: Basic <key>".
type OrderClient struct {
	base string
	http *resty.Client
}

func NewOrderClient(base string, rc *resty.Client) *OrderClient {
	return &OrderClient{base: baseURL(base), http: rc}
}

// Fetch reads the authoritative order for the credential.
func (c *OrderClient) Fetch(ctx context.Context, credential string, fwd headers.ForwardedHeaderSet) (model.OrderSnapshot, headers.ForwardedHeaderSet, error) {
	resp, respFwd, err := send(ctx, c.http, http.MethodGet, c.base, nil, fwd, credential)
	if err != nil {
		return model.EmptyOrder(), nil, err
	}
	if !isSuccess(resp) {
		return model.EmptyOrder(), respFwd, remoteError(resp)
	}
	return decodeOrder(resp, respFwd)
}

// AddItem puts qty units of a product in the cart and returns the updated
// authoritative order, so the caller can refresh its cache instead of
// patching it from guesses.
func (c *OrderClient) AddItem(ctx context.Context, credential, productID string, qty int, fwd headers.ForwardedHeaderSet) (model.OrderSnapshot, headers.ForwardedHeaderSet, error) {
	form := map[string]string{
		"product_id": productID,
		"qty":        strconv.Itoa(qty),
	}
	resp, respFwd, err := send(ctx, c.http, http.MethodPost, c.base+"add-item", form, fwd, credential)
	if err != nil {
		return model.EmptyOrder(), nil, err
	}
	if !isSuccess(resp) {
		return model.EmptyOrder(), respFwd, remoteError(resp)
	}
	return decodeOrder(resp, respFwd)
}

// Checkout places the order and returns its final state.
func (c *OrderClient) Checkout(ctx context.Context, credential string, fwd headers.ForwardedHeaderSet) (model.OrderSnapshot, headers.ForwardedHeaderSet, error) {
	resp, respFwd, err := send(ctx, c.http, http.MethodPost, c.base+"checkout", nil, fwd, credential)
	if err != nil {
		return model.EmptyOrder(), nil, err
	}
	if !isSuccess(resp) {
		return model.EmptyOrder(), respFwd, remoteError(resp)
	}
	return decodeOrder(resp, respFwd)
}

func decodeOrder(resp *resty.Response, respFwd headers.ForwardedHeaderSet) (model.OrderSnapshot, headers.ForwardedHeaderSet, error) {
	var body struct {
		Result model.OrderSnapshot `json:"result"`
	}
	if err := decode(resp, &body); err != nil {
		return model.EmptyOrder(), respFwd, err
	}
	if body.Result.Items == nil {
		body.Result.Items = map[string]int{}
	}
	return body.Result, respFwd, nil
}
