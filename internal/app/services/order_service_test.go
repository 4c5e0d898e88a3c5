package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

func TestGetForStudent(t *testing.T) {
	db := newMemDB()
	orders := &memOrders{memDB: db}
	receipts := newMemReceipts()
	svc := NewOrderService(orders, receipts, zerolog.Nop())
	ctx := context.Background()

	course := db.addCourse("Core Java Bootcamp", 999, 60, 0)
	owner := db.addStudent("a@x.com")
	require.NoError(t, orders.RecordWithSeat(ctx, &models.Order{
		StudentID: owner.ID, CourseID: course.ID, AmountPaid: decimal.NewFromInt(999),
		TransactionID: "pay_123", GatewayOrderID: "order_abc", PaymentStatus: models.PaymentStatusCompleted,
	}))

	resp, err := svc.GetForStudent(ctx, owner.ID, "pay_123")
	require.NoError(t, err)
	assert.Equal(t, "pay_123", resp.TransactionID)
	assert.Equal(t, "completed", resp.PaymentStatus)
	assert.Equal(t, "Core Java Bootcamp", resp.Course.Title)
	assert.Empty(t, resp.ReceiptURL)

	_, err = receipts.SaveBytes(ReceiptDir, "pay_123.html", []byte("<html></html>"))
	require.NoError(t, err)
	resp, err = svc.GetForStudent(ctx, owner.ID, "pay_123")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/receipts/pay_123.html", resp.ReceiptURL)

	_, err = svc.GetForStudent(ctx, uuid.New(), "pay_123")
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)

	_, err = svc.GetForStudent(ctx, owner.ID, "pay_missing")
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)

	list, err := svc.ListForStudent(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
