package checkout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

func TestHappyPath(t *testing.T) {
	f := NewFlow()
	for _, s := range []State{AwaitingGatewayOrder, AwaitingPaymentConfirmation, RecordingOrder, Completed} {
		require.NoError(t, f.Advance(s))
		assert.Equal(t, s, f.State())
	}
	assert.True(t, f.IsTerminal())
	assert.ErrorIs(t, f.Fail(ReasonService), apperrors.ErrCheckoutAlreadyClosed)
}

func TestIllegalTransitions(t *testing.T) {
	f := NewFlow()
	assert.ErrorIs(t, f.Advance(RecordingOrder), apperrors.ErrIllegalTransition)
	assert.ErrorIs(t, f.Advance(Completed), apperrors.ErrIllegalTransition)
	assert.Equal(t, Idle, f.State())
}

func TestFailIsAbsorbing(t *testing.T) {
	for _, from := range []State{Idle, AwaitingGatewayOrder, AwaitingPaymentConfirmation, RecordingOrder} {
		t.Run(string(from), func(t *testing.T) {
			f, err := Restore(string(from), nil)
			require.NoError(t, err)
			require.NoError(t, f.Fail(ReasonPersist))

			assert.Equal(t, Failed, f.State())
			assert.Equal(t, ReasonPersist, f.Reason())
			assert.Error(t, f.Advance(Completed))
		})
	}
}

func TestRestore(t *testing.T) {
	reason := "CapacityExceeded"
	f, err := Restore("Failed", &reason)
	require.NoError(t, err)
	assert.Equal(t, ReasonCapacityExceeded, f.Reason())

	_, err = Restore("Shipped", nil)
	assert.Error(t, err)
}

func TestReasonFor(t *testing.T) {
	assert.Equal(t, ReasonCapacityExceeded, ReasonFor(fmt.Errorf("wrap: %w", apperrors.ErrCapacityExceeded)))
	assert.Equal(t, ReasonValidation, ReasonFor(apperrors.NewValidationError("bad", nil)))
	assert.Equal(t, ReasonGatewayOrder, ReasonFor(apperrors.ErrGatewayOrder))
	assert.Equal(t, ReasonService, ReasonFor(errors.New("boom")))
}
