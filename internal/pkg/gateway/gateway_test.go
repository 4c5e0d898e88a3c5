package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrders struct {
	data map[string]interface{}
	body map[string]interface{}
	err  error
}

func (s *stubOrders) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	s.data = data
	return s.body, s.err
}

func newTestGateway(orders orderCreator) *Razorpay {
	return &Razorpay{keyID: "rzp_test_key", keySecret: "secret", orders: orders}
}

func TestCreateOrderSendsMinorUnits(t *testing.T) {
	stub := &stubOrders{body: map[string]interface{}{
		"id":       "order_abc",
		"amount":   float64(99900),
		"currency": "INR",
		"receipt":  "rcpt_1",
		"status":   "created",
	}}
	gw := newTestGateway(stub)

	order, err := gw.CreateOrder(context.Background(), 99900, "INR", "rcpt_1")
	require.NoError(t, err)

	assert.Equal(t, int64(99900), stub.data["amount"])
	assert.Equal(t, "INR", stub.data["currency"])
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(99900), order.Amount)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrderFailures(t *testing.T) {
	tests := []struct {
		name  string
		stub  *stubOrders
		minor int64
	}{
		{"client error", &stubOrders{err: errors.New("BAD_REQUEST_ERROR")}, 100},
		{"missing id", &stubOrders{body: map[string]interface{}{"amount": float64(100)}}, 100},
		{"missing amount", &stubOrders{body: map[string]interface{}{"id": "order_x"}}, 100},
		{"non positive amount", &stubOrders{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestGateway(tt.stub).CreateOrder(context.Background(), tt.minor, "INR", "rcpt")
			assert.ErrorIs(t, err, ErrOrderCreate)
		})
	}
}

func TestVerifyPayment(t *testing.T) {
	gw := newTestGateway(&stubOrders{})

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_abc|pay_123"))
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, gw.VerifyPayment("order_abc", "pay_123", signature))
	assert.False(t, gw.VerifyPayment("order_abc", "pay_999", signature))
	assert.False(t, gw.VerifyPayment("order_abc", "pay_123", ""))
}

func TestNewReceiptID(t *testing.T) {
	a, b := NewReceiptID(), NewReceiptID()
	assert.True(t, strings.HasPrefix(a, "rcpt_"))
	assert.NotEqual(t, a, b)
	assert.LessOrEqual(t, len(a), 40)
}
