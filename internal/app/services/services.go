package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yigit/javamaster/internal/app/models"
)

// Services defined in this package:
// - AuthService: sign-up, student and admin login, API tokens
// - CourseService: catalog reads
// - CheckoutService: the order creation flow
// - OrderService: order lookups for students
// - DashboardService: home, student and admin dashboards
// - PaymentService: the bare create-order endpoint

// StudentStore is the student persistence used by the services
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit uint64) ([]*models.Student, error)
}

// AdminStore looks up admin accounts
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

// CourseStore reads the catalog
type CourseStore interface {
	List(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	Count(ctx context.Context) (int64, error)
}

// OrderStore records and reads orders
type OrderStore interface {
	RecordWithSeat(ctx context.Context, order *models.Order) error
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Order, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Order, error)
	ListCompletedWithDetails(ctx context.Context, limit uint64) ([]*models.Order, error)
	RevenueTotals(ctx context.Context) (decimal.Decimal, int64, error)
	RevenueByDay(ctx context.Context, since time.Time) ([]models.RevenuePoint, error)
	CountCompleted(ctx context.Context) (int64, error)
}

// CheckoutAttemptStore persists checkout attempts between requests
type CheckoutAttemptStore interface {
	Create(ctx context.Context, attempt *models.CheckoutAttempt) error
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.CheckoutAttempt, error)
	UpdateState(ctx context.Context, id uuid.UUID, state string, reason *string) error
	CountByState(ctx context.Context, state string) (int64, error)
}

// TokenStore keeps API refresh tokens
type TokenStore interface {
	CreateToken(ctx context.Context, token string, studentID uuid.UUID, expiryDate time.Time) error
	GetStudentIDByToken(ctx context.Context, token string) (uuid.UUID, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllStudentTokens(ctx context.Context, studentID uuid.UUID) error
}

// OrderPublisher announces completed orders
type OrderPublisher interface {
	PublishOrder(order *models.Order, course *models.Course, student *models.Student)
}

// ReceiptStore saves rendered receipts and returns their public URL
type ReceiptStore interface {
	SaveBytes(subPath, name string, data []byte) (string, error)
}
