package backend

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
)

// SimulatePayment answers 200 for both approved and declined payments; the
// verdict is in the status field. Malformed requests get a 400.
func (h *Handler) SimulatePayment(w http.ResponseWriter, r *http.Request) {
	var req payment.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.payments.Process(r.Context(), req)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("simulate payment")
		writeError(w, http.StatusInternalServerError, "payment simulation failed")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"status":    resp.Status,
		"reference": resp.Reference,
		"amount":    resp.Amount.String(),
	}).Info("payment simulated")
	writeJSON(w, http.StatusOK, resp)
}
