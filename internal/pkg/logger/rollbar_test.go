package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type reported struct {
	level string
	msg   string
}

func newTestHook(sink *[]reported) *RollbarHook {
	return &RollbarHook{
		minLevel: zerolog.ErrorLevel,
		report: func(level, msg string) {
			*sink = append(*sink, reported{level: level, msg: msg})
		},
	}
}

func TestRollbarHookForwardsErrorsOnly(t *testing.T) {
	var sink []reported
	var buf bytes.Buffer
	lgr := zerolog.New(&buf).Hook(newTestHook(&sink))

	lgr.Info().Msg("checkout started")
	lgr.Warn().Msg("slow gateway")
	lgr.Error().Str("paymentToken", "pay_123").Msg("order insert failed after payment")

	assert.Len(t, sink, 1)
	assert.Equal(t, "error", sink[0].level)
	assert.Equal(t, "order insert failed after payment", sink[0].msg)
	assert.Contains(t, buf.String(), "pay_123")
}

func TestNewRollbarHookWithoutToken(t *testing.T) {
	assert.Nil(t, NewRollbarHook(RollbarConfig{}))
}
