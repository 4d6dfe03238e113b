package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

var errBadOrder = errors.New("bad order")

// PlaceOrder prices each line from the catalog, stores the order as
// PENDING and publishes OrderPlaced. Stock is not reserved.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var quantities order.Quantities
	if err := decodeJSON(w, r, &quantities); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(quantities) == 0 {
		writeError(w, http.StatusBadRequest, "order must contain at least one item")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.priceItems(ctx, quantities)
	if err != nil {
		if errors.Is(err, errBadOrder) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("price order items")
		writeError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	userID := middleware.GetUserID(r.Context())
	o := &order.Order{UserID: userID, Items: items, Status: order.StatusPending}
	if err := h.orders.Create(ctx, o); err != nil {
		h.logger.WithError(err).Error("create order")
		writeError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	log := h.logger.WithFields(logrus.Fields{
		"orderId":     o.ID,
		"userId":      userID,
		"totalAmount": o.TotalAmount.String(),
	})
	meta := events.EnvelopeMetadata{CorrelationID: middleware.GetCorrelationID(r.Context())}
	if err := h.events.PublishOrderPlaced(ctx, o, meta); err != nil {
		log.WithError(err).Error("publish OrderPlaced")
	}

	log.Info("order placed")
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) priceItems(ctx context.Context, quantities order.Quantities) ([]order.Item, error) {
	keys := make([]string, 0, len(quantities))
	for k := range quantities {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]order.Item, 0, len(keys))
	for _, k := range keys {
		productID, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid product id %q", errBadOrder, k)
		}
		qty := quantities[k]
		if qty < 1 {
			return nil, fmt.Errorf("%w: quantity for product %d must be at least 1", errBadOrder, productID)
		}

		p, err := h.products.Get(ctx, productID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %d not found", errBadOrder, productID)
			}
			return nil, err
		}

		items = append(items, order.Item{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  qty,
			Price:     p.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	return items, nil
}

func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.orders.ListByUser(ctx, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetOrder only returns orders owned by the caller.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	if o.UserID != middleware.GetUserID(r.Context()) {
		writeError(w, http.StatusForbidden, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, o)
}
