// Package productservice serves the read-only product catalog, loaded once
// from a YAML file at startup.
package productservice

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/shopmesh/shopmesh/internal/model"
)

var ErrProductNotFound = errors.New("product not found")

// Catalog is the immutable product listing. Lookups by id are O(1); the
// slice keeps the file's ordering for the listing endpoint.
type Catalog struct {
	products []model.Product
	byID     map[string]model.Product
}

// LoadCatalog reads the catalog from a YAML file: a list of entries with
// id, name, price and description keys.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog %s", path)
	}

	var products []model.Product
	if err := yaml.Unmarshal(raw, &products); err != nil {
		return nil, errors.Wrapf(err, "parsing catalog %s", path)
	}
	return NewCatalog(products), nil
}

func NewCatalog(products []model.Product) *Catalog {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// All returns every product in catalog order. The result is never nil so
// the listing marshals as [] rather than null.
func (c *Catalog) All() []model.Product {
	if c.products == nil {
		return []model.Product{}
	}
	return c.products
}

// Get looks a product up by id.
func (c *Catalog) Get(id string) (model.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return model.Product{}, errors.Wrapf(ErrProductNotFound, "id %s", id)
	}
	return p, nil
}
