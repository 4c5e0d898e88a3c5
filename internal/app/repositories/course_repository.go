package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/db"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/dberrors"
	"github.com/yigit/javamaster/internal/pkg/logger"
)

var courseColumns = []string{
	"c.id", "c.title", "c.description", "c.original_price", "c.discounted_price",
	"c.seats_available", "c.seats_reserved", "c.batch_start_date", "c.features", "c.modules", "c.created_at",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(conn db.Querier) *CourseRepository {
	return &CourseRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List returns every course ordered by batch start date
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses c").
		OrderBy("c.batch_start_date ASC", "c.title ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// GetByID retrieves a course by id
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses c").
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// Count returns the number of courses in the catalog
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, r.sb.Select("COUNT(*)").From("courses"))
}

// CreateIfMissing inserts a course unless one with the same title exists.
// It reports whether a row was written.
func (r *CourseRepository) CreateIfMissing(ctx context.Context, course *models.Course) (bool, error) {
	modules, err := json.Marshal(course.Modules)
	if err != nil {
		return false, fmt.Errorf("failed to encode course modules: %w", err)
	}
	features := course.Features
	if features == nil {
		features = []string{}
	}

	sql, args, err := r.sb.Insert("courses").
		Columns("title", "description", "original_price", "discounted_price", "seats_available",
			"seats_reserved", "batch_start_date", "features", "modules").
		Values(course.Title, course.Description, course.OriginalPrice, course.DiscountedPrice, course.SeatsAvailable,
			course.SeatsReserved, course.BatchStartDate, features, modules).
		Suffix("ON CONFLICT (title) DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return false, fmt.Errorf("failed to build create course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("title", course.Title).Msg("Error executing create course query")
		return false, fmt.Errorf("error creating course: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// reserveSeat takes one seat of the course through q, which is normally the
// transaction recording the order. The update only matches while a seat is
// left, so concurrent reservations can never push seats_reserved past
// seats_available; a full course yields ErrCapacityExceeded.
func reserveSeat(ctx context.Context, q db.Querier, sb squirrel.StatementBuilderType, courseID uuid.UUID) error {
	sql, args, err := sb.Update("courses").
		Set("seats_reserved", squirrel.Expr("seats_reserved + 1")).
		Where(squirrel.Eq{"id": courseID}).
		Where("seats_reserved < seats_available").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building reserve seat SQL")
		return fmt.Errorf("failed to build reserve seat query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsCheckViolation(err, "courses_seats_check") {
			return apperrors.ErrCapacityExceeded
		}
		logger.Error().Err(err).Str("courseID", courseID.String()).Msg("Error executing reserve seat query")
		return fmt.Errorf("error reserving seat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCapacityExceeded
	}
	return nil
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.OriginalPrice, &c.DiscountedPrice,
		&c.SeatsAvailable, &c.SeatsReserved, &c.BatchStartDate, &c.Features, &c.Modules, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if c.Features == nil {
		c.Features = []string{}
	}
	return &c, nil
}
