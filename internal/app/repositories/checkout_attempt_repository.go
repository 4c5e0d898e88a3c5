package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/db"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/logger"
)

// CheckoutAttemptRepository persists order creation flows between requests
type CheckoutAttemptRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCheckoutAttemptRepository creates a new CheckoutAttemptRepository
func NewCheckoutAttemptRepository(conn db.Querier) *CheckoutAttemptRepository {
	return &CheckoutAttemptRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an attempt and fills its id and timestamps
func (r *CheckoutAttemptRepository) Create(ctx context.Context, attempt *models.CheckoutAttempt) error {
	sql, args, err := r.sb.Insert("checkout_attempts").
		Columns("student_id", "course_id", "gateway_order_id", "amount", "currency", "receipt", "state", "failure_reason").
		Values(attempt.StudentID, attempt.CourseID, attempt.GatewayOrderID, attempt.Amount, attempt.Currency,
			attempt.Receipt, attempt.State, attempt.FailureReason).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create checkout attempt SQL")
		return fmt.Errorf("failed to build create checkout attempt query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&attempt.ID, &attempt.CreatedAt, &attempt.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("gatewayOrderID", attempt.GatewayOrderID).Msg("Error executing create checkout attempt query")
		return fmt.Errorf("error creating checkout attempt: %w", err)
	}
	return nil
}

// GetByGatewayOrderID retrieves the attempt that requested the gateway order
func (r *CheckoutAttemptRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.CheckoutAttempt, error) {
	sql, args, err := r.sb.Select("id", "student_id", "course_id", "gateway_order_id", "amount", "currency",
		"receipt", "state", "failure_reason", "created_at", "updated_at").
		From("checkout_attempts").
		Where(squirrel.Eq{"gateway_order_id": gatewayOrderID}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get checkout attempt SQL")
		return nil, fmt.Errorf("failed to build get checkout attempt query: %w", err)
	}

	var a models.CheckoutAttempt
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.StudentID, &a.CourseID, &a.GatewayOrderID, &a.Amount,
		&a.Currency, &a.Receipt, &a.State, &a.FailureReason, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCheckoutNotFound
		}
		logger.Error().Err(err).Str("gatewayOrderID", gatewayOrderID).Msg("Error scanning checkout attempt row")
		return nil, fmt.Errorf("error retrieving checkout attempt: %w", err)
	}
	return &a, nil
}

// UpdateState moves an attempt to a new state; reason is stored for failures
func (r *CheckoutAttemptRepository) UpdateState(ctx context.Context, id uuid.UUID, state string, reason *string) error {
	sql, args, err := r.sb.Update("checkout_attempts").
		Set("state", state).
		Set("failure_reason", reason).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update checkout attempt SQL")
		return fmt.Errorf("failed to build update checkout attempt query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("attemptID", id.String()).Msg("Error executing update checkout attempt query")
		return fmt.Errorf("error updating checkout attempt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCheckoutNotFound
	}
	return nil
}

// CountByState returns how many attempts are in the given state
func (r *CheckoutAttemptRepository) CountByState(ctx context.Context, state string) (int64, error) {
	return countRows(ctx, r.db, r.sb.Select("COUNT(*)").From("checkout_attempts").Where(squirrel.Eq{"state": state}))
}
