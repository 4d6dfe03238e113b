package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid payment request")

// Simulator approves payments without moving money. DeclineRate in [0,1]
// is the share of valid requests answered with StatusDeclined.
type Simulator struct {
	DeclineRate float64
	Delay       time.Duration

	now    func() time.Time
	random func() float64
}

func NewSimulator(declineRate float64, delay time.Duration) *Simulator {
	return &Simulator{
		DeclineRate: declineRate,
		Delay:       delay,
		now:         time.Now,
		random:      rand.Float64,
	}
}

func (s *Simulator) Process(ctx context.Context, req Request) (Response, error) {
	if err := validate(req); err != nil {
		return Response{}, err
	}

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return Response{}, ctx.Err()
		}
	}

	now := s.now().UTC()
	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	status := StatusSuccessful
	if s.DeclineRate > 0 && s.random() < s.DeclineRate {
		status = StatusDeclined
	}

	return Response{
		Status:    status,
		Reference: "TXN-" + uuid.NewString(),
		Timestamp: now,
		Amount:    req.Amount,
		Currency:  currency,
	}, nil
}

func validate(req Request) error {
	if !req.Amount.IsPositive() {
		return fmt.Errorf("%w: invalid amount", ErrInvalidRequest)
	}
	digits := strings.ReplaceAll(strings.ReplaceAll(req.CardNumber, " ", ""), "-", "")
	if len(digits) < 13 || len(digits) > 19 {
		return fmt.Errorf("%w: invalid card number", ErrInvalidRequest)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: invalid card number", ErrInvalidRequest)
		}
	}
	return nil
}
