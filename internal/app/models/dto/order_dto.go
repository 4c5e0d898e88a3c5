package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yigit/javamaster/internal/app/models"
)

// OrderResponse is the view of a purchase, with its joined course and student when loaded
type OrderResponse struct {
	ID             string           `json:"id"`
	TransactionID  string           `json:"transactionId" example:"pay_123"`
	GatewayOrderID string           `json:"gatewayOrderId,omitempty" example:"order_abc"`
	AmountPaid     decimal.Decimal  `json:"amountPaid" swaggertype:"number" example:"999"`
	PaymentStatus  string           `json:"paymentStatus" example:"completed"`
	PurchaseDate   time.Time        `json:"purchaseDate"`
	Course         *CourseResponse  `json:"course,omitempty"`
	Student        *StudentResponse `json:"student,omitempty"`
	ReceiptURL     string           `json:"receiptUrl,omitempty"`
}

// FromOrder maps an order model, nil-safe
func FromOrder(o *models.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	return &OrderResponse{
		ID:             o.ID.String(),
		TransactionID:  o.TransactionID,
		GatewayOrderID: o.GatewayOrderID,
		AmountPaid:     o.AmountPaid,
		PaymentStatus:  string(o.PaymentStatus),
		PurchaseDate:   o.PurchaseDate,
		Course:         FromCourse(o.Course),
		Student:        FromStudent(o.Student),
	}
}

// FromOrders maps a slice of orders
func FromOrders(orders []*models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, item := range orders {
		if item != nil {
			out = append(out, *FromOrder(item))
		}
	}
	return out
}
