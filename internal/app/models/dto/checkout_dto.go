package dto

import (
	"github.com/shopspring/decimal"
)

// CheckoutRequest is the checkout form submitted by a student
type CheckoutRequest struct {
	FullName     string `json:"fullName" form:"fullName" binding:"required,notblank,max=100"`
	Email        string `json:"email" form:"email" binding:"required,email"`
	MobileNumber string `json:"mobileNumber" form:"mobileNumber" binding:"required,mobile"`
	CollegeName  string `json:"collegeName" form:"collegeName" binding:"required,notblank,max=150"`
	Year         string `json:"year" form:"year" binding:"required,year"`
}

// CheckoutFormResponse is the data rendered on the checkout page
type CheckoutFormResponse struct {
	Course      *CourseResponse `json:"course"`
	Prefill     CheckoutRequest `json:"prefill"`
	YearOptions []string        `json:"yearOptions"`
}

// PaymentPrefill pre-populates the payment widget
type PaymentPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// CheckoutSessionResponse carries everything the payment widget needs to open
type CheckoutSessionResponse struct {
	AttemptID      string         `json:"attemptId"`
	State          string         `json:"state" example:"AwaitingPaymentConfirmation"`
	KeyID          string         `json:"keyId" example:"rzp_test_xxx"`
	GatewayOrderID string         `json:"gatewayOrderId" example:"order_abc"`
	Amount         int64          `json:"amount" example:"99900"`
	Currency       string         `json:"currency" example:"INR"`
	Name           string         `json:"name" example:"JavaMaster"`
	Description    string         `json:"description" example:"Core Java Bootcamp"`
	Prefill        PaymentPrefill `json:"prefill"`
	ConfirmURL     string         `json:"confirmUrl" example:"/checkout/confirm"`
}

// ConfirmPaymentRequest is posted by the widget's success callback
type ConfirmPaymentRequest struct {
	GatewayOrderID string `json:"razorpayOrderId" form:"razorpay_order_id" binding:"required"`
	PaymentID      string `json:"razorpayPaymentId" form:"razorpay_payment_id" binding:"required"`
	Signature      string `json:"razorpaySignature" form:"razorpay_signature" binding:"required"`
}

// ConfirmPaymentResponse is returned once the order has been recorded
type ConfirmPaymentResponse struct {
	Order    *OrderResponse `json:"order"`
	Redirect string         `json:"redirect" example:"/order-confirmation/pay_123"`
}

// CreateOrderRequest is the body of POST /api/create-order
type CreateOrderRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number" example:"999"`
}

// ErrorMessage is the bare error body used by the create-order endpoint
type ErrorMessage struct {
	Error string `json:"error" example:"Failed to create Razorpay order"`
}
