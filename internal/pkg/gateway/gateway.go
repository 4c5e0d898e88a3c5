// Package gateway wraps the external payment gateway used at checkout.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
	"github.com/teris-io/shortid"
	"github.com/yigit/javamaster/internal/pkg/logger"
	"github.com/yigit/javamaster/internal/pkg/metrics"
)

// ErrOrderCreate is returned when the gateway refuses or fails to create an order
var ErrOrderCreate = errors.New("gateway order creation failed")

// GatewayOrder is the subset of the gateway order object the checkout relies on.
// Amount is in minor units (paise).
type GatewayOrder struct {
	ID       string                 `json:"id"`
	Amount   int64                  `json:"amount"`
	Currency string                 `json:"currency"`
	Receipt  string                 `json:"receipt"`
	Status   string                 `json:"status"`
	Raw      map[string]interface{} `json:"-"`
}

// PaymentGateway creates orders for the checkout widget and verifies its callbacks
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error)
	VerifyPayment(orderID, paymentID, signature string) bool
	KeyID() string
}

// orderCreator is the part of the razorpay client used here
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Razorpay implements PaymentGateway with the razorpay-go client
type Razorpay struct {
	keyID     string
	keySecret string
	timeout   time.Duration
	orders    orderCreator
}

// NewRazorpay creates a Razorpay gateway. timeout bounds each CreateOrder call.
func NewRazorpay(keyID, keySecret string, timeout time.Duration) *Razorpay {
	client := razorpay.NewClient(keyID, keySecret)
	return &Razorpay{
		keyID:     keyID,
		keySecret: keySecret,
		timeout:   timeout,
		orders:    client.Order,
	}
}

// KeyID returns the public key the checkout widget is opened with
func (r *Razorpay) KeyID() string {
	return r.keyID
}

// CreateOrder asks the gateway for an order of amountMinor units
func (r *Razorpay) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error) {
	if amountMinor <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrOrderCreate)
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}

	type result struct {
		body map[string]interface{}
		err  error
	}
	done := make(chan result, 1)
	start := time.Now()
	go func() {
		body, err := r.orders.Create(data, nil)
		done <- result{body: body, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		metrics.ObserveGatewayCall("create_order", "timeout", time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrOrderCreate, ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		metrics.ObserveGatewayCall("create_order", "error", time.Since(start))
		logger.Error().Err(res.err).Str("receipt", receipt).Int64("amount", amountMinor).Msg("Razorpay order creation failed")
		return nil, fmt.Errorf("%w: %v", ErrOrderCreate, res.err)
	}
	metrics.ObserveGatewayCall("create_order", "ok", time.Since(start))

	order, err := parseOrder(res.body)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("gatewayOrderID", order.ID).Str("receipt", receipt).Msg("Razorpay order created")
	return order, nil
}

// VerifyPayment checks the HMAC-SHA256 signature the widget returns over order_id|payment_id
func (r *Razorpay) VerifyPayment(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, r.keySecret)
}

func parseOrder(body map[string]interface{}) (*GatewayOrder, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: response has no order id", ErrOrderCreate)
	}

	order := &GatewayOrder{ID: id, Raw: body}
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)

	switch amount := body["amount"].(type) {
	case float64:
		order.Amount = int64(amount)
	case int64:
		order.Amount = amount
	case int:
		order.Amount = int64(amount)
	default:
		return nil, fmt.Errorf("%w: response has no amount", ErrOrderCreate)
	}
	return order, nil
}

// NewReceiptID returns a short unique receipt id for a gateway order
func NewReceiptID() string {
	id, err := shortid.Generate()
	if err != nil {
		return fmt.Sprintf("rcpt_%d", time.Now().UnixNano())
	}
	return "rcpt_" + id
}
