package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/middleware"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

// OrderService reads a student's orders
type OrderService interface {
	ListForStudent(ctx context.Context, studentID uuid.UUID) ([]dto.OrderResponse, error)
	GetForStudent(ctx context.Context, studentID uuid.UUID, transactionID string) (*dto.OrderResponse, error)
}

// OrderController serves order pages and their API counterparts
type OrderController struct {
	orderService OrderService
}

// NewOrderController creates a new OrderController
func NewOrderController(orderService OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Confirmation godoc
// @Summary Order confirmation
// @Description The order and its course, visible to the student who placed it
// @Tags orders
// @Produce json
// @Param transactionId path string true "Payment token"
// @Success 200 {object} dto.APIResponse{data=dto.OrderResponse}
// @Failure 404 {object} dto.ErrorResponse "Order not found"
// @Router /order-confirmation/{transactionId} [get]
func (c *OrderController) Confirmation(ctx *gin.Context) {
	student, _ := middleware.CurrentStudent(ctx)
	c.get(ctx, student.ID)
}

// List godoc
// @Summary My orders
// @Description The signed-in student's orders, newest first
// @Tags orders
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.OrderResponse}
// @Router /orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	student, _ := middleware.CurrentStudent(ctx)
	c.list(ctx, student.ID)
}

// APIList godoc
// @Summary My orders
// @Tags orders
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.OrderResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/me/orders [get]
func (c *OrderController) APIList(ctx *gin.Context) {
	studentID, ok := bearerStudentID(ctx)
	if !ok {
		return
	}
	c.list(ctx, studentID)
}

// APIGet godoc
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param transactionId path string true "Payment token"
// @Success 200 {object} dto.APIResponse{data=dto.OrderResponse}
// @Failure 404 {object} dto.ErrorResponse "Order not found"
// @Security BearerAuth
// @Router /api/v1/orders/{transactionId} [get]
func (c *OrderController) APIGet(ctx *gin.Context) {
	studentID, ok := bearerStudentID(ctx)
	if !ok {
		return
	}
	c.get(ctx, studentID)
}

func (c *OrderController) list(ctx *gin.Context, studentID uuid.UUID) {
	orders, err := c.orderService.ListForStudent(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: orders})
}

func (c *OrderController) get(ctx *gin.Context, studentID uuid.UUID) {
	order, err := c.orderService.GetForStudent(ctx.Request.Context(), studentID, ctx.Param("transactionId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: order})
}

// bearerStudentID reads the subject set by JWTAuth
func bearerStudentID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.GetString(middleware.UserIDKey))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return uuid.Nil, false
	}
	return id, true
}
