package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCheckoutCounters(t *testing.T) {
	before := testutil.ToFloat64(checkoutsFailed.WithLabelValues("CapacityExceeded"))
	CheckoutFailed("CapacityExceeded")
	assert.Equal(t, before+1, testutil.ToFloat64(checkoutsFailed.WithLabelValues("CapacityExceeded")))

	started := testutil.ToFloat64(checkoutsStarted)
	CheckoutStarted()
	assert.Equal(t, started+1, testutil.ToFloat64(checkoutsStarted))
}

func TestObserveGatewayCall(t *testing.T) {
	ObserveGatewayCall("create_order", "ok", 20*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(gatewayLatency, "javamaster_gateway_request_duration_seconds"))
}
