package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

// ReceiptLocator finds stored receipts
type ReceiptLocator interface {
	URL(subPath, name string) string
	Exists(fileURL string) bool
}

// OrderService reads a student's orders
type OrderService struct {
	orders   OrderStore
	receipts ReceiptLocator
	logger   zerolog.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orders OrderStore, receipts ReceiptLocator, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, receipts: receipts, logger: logger}
}

// ListForStudent returns the student's completed orders, newest first
func (s *OrderService) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]dto.OrderResponse, error) {
	orders, err := s.orders.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error().Err(err).Str("studentID", studentID.String()).Msg("Failed to list orders")
		return nil, apperrors.NewServiceError(err, "could not load orders")
	}
	return dto.FromOrders(orders), nil
}

// GetForStudent returns one order by transaction id. Orders of other students
// are reported as not found.
func (s *OrderService) GetForStudent(ctx context.Context, studentID uuid.UUID, transactionID string) (*dto.OrderResponse, error) {
	order, err := s.orders.GetByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrOrderNotFound) {
			return nil, err
		}
		return nil, apperrors.NewServiceError(err, "could not load order")
	}
	if order.StudentID != studentID {
		return nil, apperrors.ErrOrderNotFound
	}

	resp := dto.FromOrder(order)
	resp.ReceiptURL = s.receiptURL(transactionID)
	return resp, nil
}

// receiptURL links the receipt only once it has been written
func (s *OrderService) receiptURL(transactionID string) string {
	if s.receipts == nil {
		return ""
	}
	url := s.receipts.URL(ReceiptDir, transactionID+".html")
	if !s.receipts.Exists(url) {
		return ""
	}
	return url
}
