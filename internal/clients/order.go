package clients

import (
	"context"
	"net/http"
	"strconv"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

type OrderClient struct{ c *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

func (oc *OrderClient) Place(ctx context.Context, quantities order.Quantities) (order.Order, error) {
	var out order.Order
	err := oc.c.doJSON(ctx, http.MethodPost, "/api/orders/place", "", quantities, &out)
	return out, err
}

func (oc *OrderClient) Get(ctx context.Context, id int64) (order.Order, error) {
	var out order.Order
	err := oc.c.doJSON(ctx, http.MethodGet, "/api/orders/"+strconv.FormatInt(id, 10), "", nil, &out)
	return out, err
}

func (oc *OrderClient) ListMine(ctx context.Context) ([]order.Order, error) {
	var out []order.Order
	if err := oc.c.doJSON(ctx, http.MethodGet, "/api/orders/my", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
