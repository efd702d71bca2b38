package orderservice

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/shopmesh/shopmesh/common/headers"
	"github.com/shopmesh/shopmesh/internal/model"
)

var (
	ErrUnknownProduct     = errors.New("unknown product")
	ErrCatalogUnavailable = errors.New("product service unavailable")
)

// Catalog resolves product prices. The order service never trusts a price
// sent by a client; it looks the product up at the moment the item is added.
type Catalog interface {
	Product(ctx context.Context, id string, fwd headers.ForwardedHeaderSet) (model.Product, error)
}

// CatalogClient resolves products against the product service, chaining the
// caller's forwarded headers onto the lookup.
type CatalogClient struct {
	base string
	http *resty.Client
}

func NewCatalogClient(base string, rc *resty.Client) *CatalogClient {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &CatalogClient{base: base, http: rc}
}

func (c *CatalogClient) Product(ctx context.Context, id string, fwd headers.ForwardedHeaderSet) (model.Product, error) {
	req := c.http.R().SetContext(ctx)
	for name, value := range fwd {
		req.SetHeader(name, value)
	}

	resp, err := req.Get(c.base + id)
	if err != nil {
		return model.Product{}, errors.Mark(errors.Wrapf(err, "GET %s%s", c.base, id), ErrCatalogUnavailable)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return model.Product{}, errors.Mark(errors.Newf("product %s", id), ErrUnknownProduct)
	}
	if resp.StatusCode() != http.StatusOK {
		return model.Product{}, errors.Newf("product lookup: status %d", resp.StatusCode())
	}

	var body struct {
		Result model.Product `json:"result"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return model.Product{}, errors.Wrap(err, "decoding product")
	}
	return body.Result, nil
}
