package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutAttempt persists one run of the order creation flow between the
// gateway order request and the payment widget callback.
type CheckoutAttempt struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	StudentID      uuid.UUID       `json:"studentId" db:"student_id"`
	CourseID       uuid.UUID       `json:"courseId" db:"course_id"`
	GatewayOrderID string          `json:"gatewayOrderId" db:"gateway_order_id"`
	Amount         decimal.Decimal `json:"amount" db:"amount" swaggertype:"number"`
	Currency       string          `json:"currency" db:"currency"`
	Receipt        string          `json:"receipt" db:"receipt"`
	State          string          `json:"state" db:"state"`
	FailureReason  *string         `json:"failureReason,omitempty" db:"failure_reason"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}
