package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/yigit/javamaster/internal/app/checkout"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/helpers"
)

const (
	revenueWindowDays = 7
	recentOrdersLimit = 20
)

// DashboardService builds the home page and the student and admin dashboards
type DashboardService struct {
	students StudentStore
	courses  CourseStore
	orders   OrderStore
	attempts CheckoutAttemptStore
	logger   zerolog.Logger
	now      func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(students StudentStore, courses CourseStore, orders OrderStore, attempts CheckoutAttemptStore, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		students: students,
		courses:  courses,
		orders:   orders,
		attempts: attempts,
		logger:   logger,
		now:      time.Now,
	}
}

// HomeStats counts students, completed orders and courses
func (s *DashboardService) HomeStats(ctx context.Context) (*dto.HomeStats, error) {
	students, err := s.students.Count(ctx)
	if err != nil {
		return nil, s.serviceError(err, "Failed to count students")
	}
	orders, err := s.orders.CountCompleted(ctx)
	if err != nil {
		return nil, s.serviceError(err, "Failed to count orders")
	}
	courses, err := s.courses.Count(ctx)
	if err != nil {
		return nil, s.serviceError(err, "Failed to count courses")
	}
	return &dto.HomeStats{Students: students, CompletedOrders: orders, Courses: courses}, nil
}

// HomePage returns the landing page model
func (s *DashboardService) HomePage(ctx context.Context) (*dto.HomePageResponse, error) {
	stats, err := s.HomeStats(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, s.serviceError(err, "Failed to list courses")
	}
	return &dto.HomePageResponse{Stats: *stats, Courses: dto.FromCourses(courses)}, nil
}

// StudentDashboard returns the student's profile and completed orders
func (s *DashboardService) StudentDashboard(ctx context.Context, student *models.Student) (*dto.StudentDashboardResponse, error) {
	orders, err := s.orders.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, s.serviceError(err, "Failed to list student orders")
	}
	return &dto.StudentDashboardResponse{
		Profile: dto.FromStudent(student),
		Orders:  dto.FromOrders(orders),
	}, nil
}

// AdminDashboard aggregates revenue, orders and students. page is 1-based.
func (s *DashboardService) AdminDashboard(ctx context.Context, page, pageSize int) (*dto.AdminDashboardResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	revenue, orderCount, err := s.orders.RevenueTotals(ctx)
	if err != nil {
		return nil, s.serviceError(err, "Failed to load revenue totals")
	}
	studentCount, err := s.students.Count(ctx)
	if err != nil {
		return nil, s.serviceError(err, "Failed to count students")
	}
	pending, err := s.attempts.CountByState(ctx, string(checkout.AwaitingPaymentConfirmation))
	if err != nil {
		return nil, s.serviceError(err, "Failed to count pending checkouts")
	}

	// days are bucketed in UTC by the store
	since := helpers.StartOfDay(s.now().UTC()).AddDate(0, 0, -(revenueWindowDays - 1))
	points, err := s.orders.RevenueByDay(ctx, since)
	if err != nil {
		return nil, s.serviceError(err, "Failed to load daily revenue")
	}

	recent, err := s.orders.ListCompletedWithDetails(ctx, recentOrdersLimit)
	if err != nil {
		return nil, s.serviceError(err, "Failed to list recent orders")
	}
	students, err := s.students.List(ctx, offset, limit)
	if err != nil {
		return nil, s.serviceError(err, "Failed to list students")
	}

	return &dto.AdminDashboardResponse{
		Stats: dto.AdminStats{
			TotalRevenue:     revenue,
			TotalOrders:      orderCount,
			TotalStudents:    studentCount,
			AvgOrderValue:    AverageOrderValue(revenue, orderCount),
			PendingCheckouts: pending,
		},
		RevenueByDay:       dto.FromRevenuePoints(fillDays(points, since, revenueWindowDays)),
		Orders:             dto.FromOrders(recent),
		Students:           dto.FromStudents(students),
		StudentsPagination: helpers.NewPaginationInfo(studentCount, page, pageSize),
	}, nil
}

// AverageOrderValue is revenue / orders rounded to a whole rupee, or 0 without orders
func AverageOrderValue(revenue decimal.Decimal, orders int64) decimal.Decimal {
	if orders <= 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(orders)).Round(0)
}

// fillDays returns one point per day starting at since, with zeros for days without orders
func fillDays(points []models.RevenuePoint, since time.Time, days int) []models.RevenuePoint {
	byDay := make(map[string]models.RevenuePoint, len(points))
	for _, p := range points {
		byDay[p.Day.Format(time.DateOnly)] = p
	}

	out := make([]models.RevenuePoint, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i)
		if p, ok := byDay[day.Format(time.DateOnly)]; ok {
			p.Day = day
			out = append(out, p)
			continue
		}
		out = append(out, models.RevenuePoint{Day: day, Revenue: decimal.Zero})
	}
	return out
}

func (s *DashboardService) serviceError(err error, msg string) error {
	s.logger.Error().Err(err).Msg(msg)
	return apperrors.NewServiceError(err, "could not load dashboard")
}
