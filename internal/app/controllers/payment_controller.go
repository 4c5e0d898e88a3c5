package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/gateway"
)

// PaymentService opens gateway orders for the payment widget
type PaymentService interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal) (*gateway.GatewayOrder, error)
}

// PaymentController serves the create-order endpoint. Its responses use the
// bare {"error": "..."} shape the payment widget expects.
type PaymentController struct {
	paymentService PaymentService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// CreateOrder godoc
// @Summary Create a gateway order
// @Description Converts the amount (rupees) to paise and creates a Razorpay order with a fresh receipt id
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Amount in rupees"
// @Success 200 {object} map[string]interface{} "Gateway order object"
// @Failure 400 {object} dto.ErrorMessage
// @Failure 405 {object} dto.ErrorMessage
// @Failure 500 {object} dto.ErrorMessage
// @Router /api/create-order [post]
func (c *PaymentController) CreateOrder(ctx *gin.Context) {
	if ctx.Request.Method != http.MethodPost {
		ctx.Header("Allow", http.MethodPost)
		ctx.JSON(http.StatusMethodNotAllowed, dto.ErrorMessage{Error: "Method Not Allowed"})
		return
	}

	var req dto.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorMessage{Error: "amount is required"})
		return
	}

	order, err := c.paymentService.CreateOrder(ctx.Request.Context(), *req.Amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrBadRequest) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorMessage{Error: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorMessage{Error: "Failed to create Razorpay order"})
		return
	}

	if order.Raw != nil {
		ctx.JSON(http.StatusOK, order.Raw)
		return
	}
	ctx.JSON(http.StatusOK, order)
}
