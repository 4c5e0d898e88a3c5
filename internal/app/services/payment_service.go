package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/gateway"
	"github.com/yigit/javamaster/internal/pkg/helpers"
)

// PaymentService backs the bare create-order endpoint used by the payment widget
type PaymentService struct {
	gateway  gateway.PaymentGateway
	currency string
	logger   zerolog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentGateway gateway.PaymentGateway, currency string, logger zerolog.Logger) *PaymentService {
	if currency == "" {
		currency = "INR"
	}
	return &PaymentService{gateway: paymentGateway, currency: currency, logger: logger}
}

// CreateOrder converts amount (rupees) to paise and opens a gateway order with a fresh receipt id
func (s *PaymentService) CreateOrder(ctx context.Context, amount decimal.Decimal) (*gateway.GatewayOrder, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewBadRequestError("amount must be greater than zero")
	}
	minor, err := helpers.ToMinorUnits(amount)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	order, err := s.gateway.CreateOrder(ctx, minor, s.currency, gateway.NewReceiptID())
	if err != nil {
		s.logger.Error().Err(err).Int64("amount", minor).Msg("Gateway order creation failed")
		return nil, apperrors.NewCustomError(errors.Join(apperrors.ErrGatewayOrder, err), "Failed to create Razorpay order")
	}
	return order, nil
}
