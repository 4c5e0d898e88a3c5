package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/db"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/dberrors"
	"github.com/yigit/javamaster/internal/pkg/logger"
)

// AdminRepository reads and seeds the admin_users table
type AdminRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(conn db.Querier) *AdminRepository {
	return &AdminRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByEmail retrieves an admin by email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	sql, args, err := r.sb.Select("id", "email", "full_name", "password_hash", "created_at").
		From("admin_users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get admin by email SQL")
		return nil, fmt.Errorf("failed to build get admin query: %w", err)
	}

	var admin models.AdminUser
	err = r.db.QueryRow(ctx, sql, args...).Scan(&admin.ID, &admin.Email, &admin.FullName, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning admin row")
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}
	return &admin, nil
}

// Create inserts an admin user
func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	sql, args, err := r.sb.Insert("admin_users").
		Columns("email", "full_name", "password_hash").
		Values(admin.Email, admin.FullName, admin.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create admin SQL")
		return fmt.Errorf("failed to build create admin query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&admin.ID, &admin.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "admin_users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", admin.Email).Msg("Error executing create admin query")
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}

// Exists reports whether an admin with the email is present
func (r *AdminRepository) Exists(ctx context.Context, email string) (bool, error) {
	total, err := countRows(ctx, r.db, r.sb.Select("COUNT(*)").From("admin_users").Where(squirrel.Eq{"email": email}))
	if err != nil {
		return false, err
	}
	return total > 0, nil
}
