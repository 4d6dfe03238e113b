package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
)

type CatalogClient struct{ c *Client }

func NewCatalogClient(c *Client) *CatalogClient { return &CatalogClient{c: c} }

func (cc *CatalogClient) ListProducts(ctx context.Context, f catalog.Filter) ([]catalog.Product, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}

	var out []catalog.Product
	if err := cc.c.doJSON(ctx, http.MethodGet, "/api/products", q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) GetProduct(ctx context.Context, id int64) (catalog.Product, error) {
	var out catalog.Product
	err := cc.c.doJSON(ctx, http.MethodGet, "/api/products/"+strconv.FormatInt(id, 10), "", nil, &out)
	return out, err
}
