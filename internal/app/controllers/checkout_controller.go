package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/middleware"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

// CheckoutService runs the order creation flow
type CheckoutService interface {
	Form(ctx context.Context, student *models.Student, courseID uuid.UUID) (*dto.CheckoutFormResponse, error)
	Start(ctx context.Context, student *models.Student, courseID uuid.UUID, req dto.CheckoutRequest) (*dto.CheckoutSessionResponse, error)
	Confirm(ctx context.Context, student *models.Student, req dto.ConfirmPaymentRequest) (*models.Order, error)
}

// ConfirmationPath is the page a completed checkout lands on
func ConfirmationPath(transactionID string) string {
	return "/order-confirmation/" + transactionID
}

// CheckoutController handles the checkout pages
type CheckoutController struct {
	checkoutService CheckoutService
	logger          zerolog.Logger
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(checkoutService CheckoutService, logger zerolog.Logger) *CheckoutController {
	return &CheckoutController{checkoutService: checkoutService, logger: logger}
}

// Form godoc
// @Summary Checkout form
// @Description The course and a form prefilled from the student's profile
// @Tags checkout
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CheckoutFormResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /checkout/{courseId} [get]
func (c *CheckoutController) Form(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "courseId", apperrors.ErrCourseNotFound)
	if !ok {
		return
	}
	student, _ := middleware.CurrentStudent(ctx)

	form, err := c.checkoutService.Form(ctx.Request.Context(), student, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: form})
}

// Start godoc
// @Summary Start checkout
// @Description Validates the form, creates the gateway order and returns the payment widget parameters
// @Tags checkout
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param courseId path string true "Course ID"
// @Param request body dto.CheckoutRequest true "Checkout form"
// @Success 200 {object} dto.APIResponse{data=dto.CheckoutSessionResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Course is full"
// @Failure 502 {object} dto.ErrorResponse "Gateway order could not be created"
// @Router /checkout/{courseId} [post]
func (c *CheckoutController) Start(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "courseId", apperrors.ErrCourseNotFound)
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if err := ctx.ShouldBind(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	student, _ := middleware.CurrentStudent(ctx)

	checkout, err := c.checkoutService.Start(ctx.Request.Context(), student, courseID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: checkout})
}

// Confirm godoc
// @Summary Confirm payment
// @Description Called by the payment widget on success. Verifies the signature, records the order and reserves the seat.
// @Tags checkout
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.ConfirmPaymentRequest true "Widget callback"
// @Success 200 {object} dto.APIResponse{data=dto.ConfirmPaymentResponse}
// @Success 303 {string} string "Redirect to /order-confirmation/{transactionId}"
// @Failure 400 {object} dto.ErrorResponse "Payment verification failed"
// @Failure 409 {object} dto.ErrorResponse "Course filled up or checkout already closed"
// @Failure 500 {object} dto.ErrorResponse "Order could not be recorded"
// @Router /checkout/confirm [post]
func (c *CheckoutController) Confirm(ctx *gin.Context) {
	var req dto.ConfirmPaymentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	student, _ := middleware.CurrentStudent(ctx)

	order, err := c.checkoutService.Confirm(ctx.Request.Context(), student, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	location := ConfirmationPath(order.TransactionID)
	respondRedirect(ctx, http.StatusOK, location, dto.ConfirmPaymentResponse{
		Order:    dto.FromOrder(order),
		Redirect: location,
	})
}
