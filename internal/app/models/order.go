package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is one purchase record. Rows are immutable once inserted.
type Order struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	StudentID      uuid.UUID       `json:"studentId" db:"student_id"`
	CourseID       uuid.UUID       `json:"courseId" db:"course_id"`
	AmountPaid     decimal.Decimal `json:"amountPaid" db:"amount_paid" swaggertype:"number" example:"999"`
	TransactionID  string          `json:"transactionId" db:"transaction_id" example:"pay_123"`
	GatewayOrderID string          `json:"gatewayOrderId" db:"gateway_order_id" example:"order_abc"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus" db:"payment_status" example:"completed"`
	PurchaseDate   time.Time       `json:"purchaseDate" db:"purchase_date"`

	// Relations (populated by joined queries)
	Course  *Course  `json:"course,omitempty"`
	Student *Student `json:"student,omitempty"`
}

// RevenuePoint is the completed revenue of one calendar day
type RevenuePoint struct {
	Day     time.Time       `json:"day"`
	Revenue decimal.Decimal `json:"revenue" swaggertype:"number"`
	Orders  int64           `json:"orders"`
}
