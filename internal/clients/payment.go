package clients

import (
	"context"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
)

type PaymentClient struct{ c *Client }

func NewPaymentClient(c *Client) *PaymentClient { return &PaymentClient{c: c} }

// Simulate returns the simulator's verdict. A declined payment is not an
// error; callers check Response.Successful.
func (pc *PaymentClient) Simulate(ctx context.Context, req payment.Request) (payment.Response, error) {
	var out payment.Response
	err := pc.c.doJSON(ctx, http.MethodPost, "/api/payment/simulate", "", req, &out)
	return out, err
}
