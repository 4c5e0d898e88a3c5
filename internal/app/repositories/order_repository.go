package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/db"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/dberrors"
	"github.com/yigit/javamaster/internal/pkg/logger"
)

var orderColumns = []string{
	"o.id", "o.student_id", "o.course_id", "o.amount_paid", "o.transaction_id",
	"o.gateway_order_id", "o.payment_status", "o.purchase_date",
}

// OrderRepository handles order database operations
type OrderRepository struct {
	db db.TxBeginner
	sb squirrel.StatementBuilderType
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(conn db.TxBeginner) *OrderRepository {
	return &OrderRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// RecordWithSeat inserts the order and reserves a seat of its course in one
// transaction. A transaction id that was already recorded yields
// ErrResourceAlreadyExists, a full course ErrCapacityExceeded; in both cases
// nothing is written.
func (r *OrderRepository) RecordWithSeat(ctx context.Context, order *models.Order) error {
	return db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.insert(ctx, tx, order); err != nil {
			return err
		}
		return reserveSeat(ctx, tx, r.sb, order.CourseID)
	})
}

func (r *OrderRepository) insert(ctx context.Context, q db.Querier, order *models.Order) error {
	sql, args, err := r.sb.Insert("orders").
		Columns("student_id", "course_id", "amount_paid", "transaction_id", "gateway_order_id", "payment_status").
		Values(order.StudentID, order.CourseID, order.AmountPaid, order.TransactionID, order.GatewayOrderID, order.PaymentStatus).
		Suffix("RETURNING id, purchase_date").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create order SQL")
		return fmt.Errorf("failed to build create order query: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&order.ID, &order.PurchaseDate); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "orders_transaction_id_key") {
			logger.Warn().Str("transactionID", order.TransactionID).Msg("Order already recorded for transaction")
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating order: %w", err)
	}
	return nil
}

// GetByTransactionID retrieves an order joined with its course
func (r *OrderRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.Order, error) {
	sql, args, err := r.sb.Select(append(orderColumns, courseColumns...)...).
		From("orders o").
		Join("courses c ON c.id = o.course_id").
		Where(squirrel.Eq{"o.transaction_id": transactionID}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get order SQL")
		return nil, fmt.Errorf("failed to build get order query: %w", err)
	}

	order, err := scanOrderWithCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrderNotFound
		}
		logger.Error().Err(err).Str("transactionID", transactionID).Msg("Error scanning order row")
		return nil, fmt.Errorf("error retrieving order: %w", err)
	}
	return order, nil
}

// ListByStudent returns the student's completed orders joined with courses, newest first
func (r *OrderRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Order, error) {
	sql, args, err := r.sb.Select(append(orderColumns, courseColumns...)...).
		From("orders o").
		Join("courses c ON c.id = o.course_id").
		Where(squirrel.Eq{"o.student_id": studentID, "o.payment_status": models.PaymentStatusCompleted}).
		OrderBy("o.purchase_date DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list student orders SQL")
		return nil, fmt.Errorf("failed to build list orders query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID.String()).Msg("Error executing list student orders query")
		return nil, fmt.Errorf("error listing orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := scanOrderWithCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

// ListCompletedWithDetails returns the latest completed orders joined with course and student
func (r *OrderRepository) ListCompletedWithDetails(ctx context.Context, limit uint64) ([]*models.Order, error) {
	columns := append(append(append([]string{}, orderColumns...), courseColumns...),
		"s.id", "s.email", "s.full_name", "s.college_name", "s.year", "s.mobile_number", "s.created_at")

	sql, args, err := r.sb.Select(columns...).
		From("orders o").
		Join("courses c ON c.id = o.course_id").
		Join("students s ON s.id = o.student_id").
		Where(squirrel.Eq{"o.payment_status": models.PaymentStatusCompleted}).
		OrderBy("o.purchase_date DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list completed orders SQL")
		return nil, fmt.Errorf("failed to build list completed orders query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list completed orders query")
		return nil, fmt.Errorf("error listing completed orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		var o models.Order
		var c models.Course
		var s models.Student
		err := rows.Scan(&o.ID, &o.StudentID, &o.CourseID, &o.AmountPaid, &o.TransactionID, &o.GatewayOrderID, &o.PaymentStatus, &o.PurchaseDate,
			&c.ID, &c.Title, &c.Description, &c.OriginalPrice, &c.DiscountedPrice, &c.SeatsAvailable, &c.SeatsReserved,
			&c.BatchStartDate, &c.Features, &c.Modules, &c.CreatedAt,
			&s.ID, &s.Email, &s.FullName, &s.CollegeName, &s.Year, &s.MobileNumber, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning order: %w", err)
		}
		o.Course = &c
		o.Student = &s
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

// RevenueTotals returns the sum of completed order amounts and their count
func (r *OrderRepository) RevenueTotals(ctx context.Context) (decimal.Decimal, int64, error) {
	sql, args, err := r.sb.Select("COALESCE(SUM(amount_paid), 0)", "COUNT(*)").
		From("orders").
		Where(squirrel.Eq{"payment_status": models.PaymentStatusCompleted}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building revenue totals SQL")
		return decimal.Zero, 0, fmt.Errorf("failed to build revenue totals query: %w", err)
	}

	var revenue decimal.Decimal
	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&revenue, &total); err != nil {
		logger.Error().Err(err).Msg("Error executing revenue totals query")
		return decimal.Zero, 0, fmt.Errorf("error computing revenue: %w", err)
	}
	return revenue, total, nil
}

// CountCompleted returns the number of completed orders
func (r *OrderRepository) CountCompleted(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, r.sb.Select("COUNT(*)").From("orders").
		Where(squirrel.Eq{"payment_status": models.PaymentStatusCompleted}))
}

// RevenueByDay groups completed revenue by UTC calendar day since the given time
func (r *OrderRepository) RevenueByDay(ctx context.Context, since time.Time) ([]models.RevenuePoint, error) {
	sql, args, err := r.sb.Select("DATE(purchase_date AT TIME ZONE 'UTC') AS day", "COALESCE(SUM(amount_paid), 0)", "COUNT(*)").
		From("orders").
		Where(squirrel.Eq{"payment_status": models.PaymentStatusCompleted}).
		Where(squirrel.GtOrEq{"purchase_date": since}).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building revenue by day SQL")
		return nil, fmt.Errorf("failed to build revenue by day query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing revenue by day query")
		return nil, fmt.Errorf("error computing daily revenue: %w", err)
	}
	defer rows.Close()

	points := make([]models.RevenuePoint, 0)
	for rows.Next() {
		var p models.RevenuePoint
		if err := rows.Scan(&p.Day, &p.Revenue, &p.Orders); err != nil {
			return nil, fmt.Errorf("error scanning daily revenue: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily revenue: %w", err)
	}
	return points, nil
}

func scanOrderWithCourse(row pgx.Row) (*models.Order, error) {
	var o models.Order
	var c models.Course
	err := row.Scan(&o.ID, &o.StudentID, &o.CourseID, &o.AmountPaid, &o.TransactionID, &o.GatewayOrderID, &o.PaymentStatus, &o.PurchaseDate,
		&c.ID, &c.Title, &c.Description, &c.OriginalPrice, &c.DiscountedPrice, &c.SeatsAvailable, &c.SeatsReserved,
		&c.BatchStartDate, &c.Features, &c.Modules, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.Course = &c
	return &o, nil
}
