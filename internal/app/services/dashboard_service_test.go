package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/javamaster/internal/app/checkout"
	"github.com/yigit/javamaster/internal/app/models"
)

func TestAverageOrderValue(t *testing.T) {
	tests := []struct {
		name    string
		revenue string
		orders  int64
		want    string
	}{
		{"no orders", "0", 0, "0"},
		{"exact", "2997", 3, "999"},
		{"rounds down", "1000", 3, "333"},
		{"rounds up", "2000", 3, "667"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageOrderValue(decimal.RequireFromString(tt.revenue), tt.orders)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestFillDaysAddsMissingDays(t *testing.T) {
	since := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	points := []models.RevenuePoint{
		{Day: since.AddDate(0, 0, 1), Revenue: decimal.NewFromInt(999), Orders: 1},
		{Day: since.AddDate(0, 0, 6), Revenue: decimal.NewFromInt(1998), Orders: 2},
	}

	days := fillDays(points, since, 7)
	require.Len(t, days, 7)
	assert.Equal(t, since, days[0].Day)
	assert.True(t, days[0].Revenue.IsZero())
	assert.Equal(t, int64(1), days[1].Orders)
	assert.Equal(t, int64(2), days[6].Orders)
	assert.True(t, decimal.NewFromInt(1998).Equal(days[6].Revenue))
}

func newDashboardFixture() (*DashboardService, *memDB, *memOrders, *memAttempts) {
	db := newMemDB()
	orders := &memOrders{memDB: db}
	attempts := &memAttempts{memDB: db}
	svc := NewDashboardService(&memStudents{memDB: db}, &memCourses{memDB: db}, orders, attempts, zerolog.Nop())
	return svc, db, orders, attempts
}

func TestAdminDashboard(t *testing.T) {
	svc, db, orders, attempts := newDashboardFixture()
	ctx := context.Background()

	course := db.addCourse("Core Java Bootcamp", 999, 60, 0)
	a := db.addStudent("a@x.com")
	b := db.addStudent("b@x.com")
	db.addStudent("c@x.com")

	for i, s := range []*models.Student{a, b, a} {
		require.NoError(t, orders.RecordWithSeat(ctx, &models.Order{
			StudentID:     s.ID,
			CourseID:      course.ID,
			AmountPaid:    decimal.NewFromInt(999 + int64(i)),
			TransactionID: "pay_" + string(rune('a'+i)),
			PaymentStatus: models.PaymentStatusCompleted,
		}))
	}
	require.NoError(t, attempts.Create(ctx, &models.CheckoutAttempt{
		StudentID: b.ID, CourseID: course.ID, GatewayOrderID: "order_open",
		State: string(checkout.AwaitingPaymentConfirmation),
	}))

	resp, err := svc.AdminDashboard(ctx, 1, 2)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(3000).Equal(resp.Stats.TotalRevenue))
	assert.Equal(t, int64(3), resp.Stats.TotalOrders)
	assert.Equal(t, int64(3), resp.Stats.TotalStudents)
	assert.True(t, decimal.NewFromInt(1000).Equal(resp.Stats.AvgOrderValue))
	assert.Equal(t, int64(1), resp.Stats.PendingCheckouts)

	require.Len(t, resp.RevenueByDay, revenueWindowDays)
	today := resp.RevenueByDay[revenueWindowDays-1]
	assert.Equal(t, int64(3), today.Orders)

	require.Len(t, resp.Orders, 3)
	assert.Equal(t, "pay_c", resp.Orders[0].TransactionID)
	require.NotNil(t, resp.Orders[0].Student)
	require.NotNil(t, resp.Orders[0].Course)

	assert.Len(t, resp.Students, 2)
	assert.Equal(t, 2, resp.StudentsPagination.TotalPages)
	assert.Equal(t, int64(3), resp.StudentsPagination.TotalItems)
}

func TestAdminDashboardRevenueDaysAreUTC(t *testing.T) {
	svc, db, orders, _ := newDashboardFixture()
	ctx := context.Background()

	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, 10, 18, 2, 0, 0, 0, ist)
	svc.now = func() time.Time { return now }

	course := db.addCourse("Core Java Bootcamp", 999, 60, 0)
	student := db.addStudent("a@x.com")
	require.NoError(t, orders.RecordWithSeat(ctx, &models.Order{
		StudentID: student.ID, CourseID: course.ID, AmountPaid: decimal.NewFromInt(999),
		TransactionID: "pay_late", PaymentStatus: models.PaymentStatusCompleted, PurchaseDate: now,
	}))

	resp, err := svc.AdminDashboard(ctx, 1, 20)
	require.NoError(t, err)

	require.Len(t, resp.RevenueByDay, revenueWindowDays)
	last := resp.RevenueByDay[revenueWindowDays-1]
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), last.Day)
	assert.Equal(t, int64(1), last.Orders)
	assert.True(t, decimal.NewFromInt(999).Equal(last.Revenue))
}

func TestAdminDashboardEmpty(t *testing.T) {
	svc, _, _, _ := newDashboardFixture()

	resp, err := svc.AdminDashboard(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.True(t, resp.Stats.AvgOrderValue.IsZero())
	assert.Empty(t, resp.Orders)
	assert.Len(t, resp.RevenueByDay, revenueWindowDays)
	assert.Equal(t, 1, resp.StudentsPagination.CurrentPage)
}

func TestHomePageAndStudentDashboard(t *testing.T) {
	svc, db, orders, _ := newDashboardFixture()
	ctx := context.Background()
	course := db.addCourse("Core Java Bootcamp", 999, 60, 0)
	db.addCourse("Spring Boot Masterclass", 1499, 40, 0)
	student := db.addStudent("a@x.com")
	require.NoError(t, orders.RecordWithSeat(ctx, &models.Order{
		StudentID: student.ID, CourseID: course.ID, AmountPaid: decimal.NewFromInt(999),
		TransactionID: "pay_1", PaymentStatus: models.PaymentStatusCompleted,
	}))

	home, err := svc.HomePage(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), home.Stats.Students)
	assert.Equal(t, int64(1), home.Stats.CompletedOrders)
	assert.Equal(t, int64(2), home.Stats.Courses)
	assert.Len(t, home.Courses, 2)

	dash, err := svc.StudentDashboard(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", dash.Profile.Email)
	require.Len(t, dash.Orders, 1)
	assert.Equal(t, "Core Java Bootcamp", dash.Orders[0].Course.Title)

	other, err := svc.StudentDashboard(ctx, &models.Student{ID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, other.Orders)
}
