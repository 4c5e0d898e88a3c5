package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

func newOrder() *models.Order {
	return &models.Order{
		StudentID:      uuid.New(),
		CourseID:       uuid.New(),
		AmountPaid:     decimal.NewFromInt(999),
		TransactionID:  "pay_123",
		GatewayOrderID: "order_abc",
		PaymentStatus:  models.PaymentStatusCompleted,
	}
}

// anyArgs matches n bind parameters of any value
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestRecordWithSeatCommitsOrderAndSeat(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	order := newOrder()
	orderID := uuid.New()
	purchased := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(order.StudentID, order.CourseID, pgxmock.AnyArg(), "pay_123", "order_abc", models.PaymentStatusCompleted).
		WillReturnRows(pgxmock.NewRows([]string{"id", "purchase_date"}).AddRow(orderID, purchased))
	mock.ExpectExec("UPDATE courses SET seats_reserved = seats_reserved \\+ 1").
		WithArgs(order.CourseID.String()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	repo := NewOrderRepository(mock)
	require.NoError(t, repo.RecordWithSeat(context.Background(), order))

	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, purchased, order.PurchaseDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordWithSeatRollsBackWhenCourseIsFull(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	order := newOrder()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(anyArgs(6)...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "purchase_date"}).AddRow(uuid.New(), time.Now()))
	mock.ExpectExec("UPDATE courses").
		WithArgs(order.CourseID.String()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	repo := NewOrderRepository(mock)
	err = repo.RecordWithSeat(context.Background(), order)

	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordWithSeatRejectsDuplicateTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(anyArgs(6)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "orders_transaction_id_key"})
	mock.ExpectRollback()

	repo := NewOrderRepository(mock)
	err = repo.RecordWithSeat(context.Background(), newOrder())

	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByTransactionIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM orders o JOIN courses c").
		WithArgs("pay_missing").
		WillReturnRows(pgxmock.NewRows(append(orderColumns, courseColumns...)))

	repo := NewOrderRepository(mock)
	_, err = repo.GetByTransactionID(context.Background(), "pay_missing")

	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevenueTotals(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount_paid\\), 0\\), COUNT\\(\\*\\) FROM orders").
		WithArgs(models.PaymentStatusCompleted).
		WillReturnRows(pgxmock.NewRows([]string{"sum", "count"}).AddRow(decimal.NewFromInt(2997), int64(3)))

	repo := NewOrderRepository(mock)
	revenue, total, err := repo.RevenueTotals(context.Background())
	require.NoError(t, err)

	assert.True(t, revenue.Equal(decimal.NewFromInt(2997)))
	assert.Equal(t, int64(3), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSeatOnFullCourse(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	courseID := uuid.New()
	mock.ExpectExec("UPDATE courses SET seats_reserved = seats_reserved \\+ 1 WHERE id = \\$1 AND seats_reserved < seats_available").
		WithArgs(courseID.String()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewOrderRepository(mock)
	err = reserveSeat(context.Background(), mock, repo.sb, courseID)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevenueByDayBucketsInUTC(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	since := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT DATE\\(purchase_date AT TIME ZONE 'UTC'\\) AS day").
		WithArgs(models.PaymentStatusCompleted, since).
		WillReturnRows(pgxmock.NewRows([]string{"day", "revenue", "orders"}).
			AddRow(day, decimal.NewFromInt(999), int64(1)))

	points, err := NewOrderRepository(mock).RevenueByDay(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, day, points[0].Day)
	assert.NoError(t, mock.ExpectationsWereMet())
}
