package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yigit/javamaster/internal/app/models"
)

// HomeStats are the counters shown on the landing page
type HomeStats struct {
	Students        int64 `json:"students" example:"1200"`
	CompletedOrders int64 `json:"completedOrders" example:"950"`
	Courses         int64 `json:"courses" example:"4"`
}

// StudentDashboardResponse is the student's profile with their completed orders
type StudentDashboardResponse struct {
	Profile *StudentResponse `json:"profile"`
	Orders  []OrderResponse  `json:"orders"`
}

// AdminStats are the headline numbers on the admin dashboard
type AdminStats struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue" swaggertype:"number" example:"94905"`
	TotalOrders      int64           `json:"totalOrders" example:"95"`
	TotalStudents    int64           `json:"totalStudents" example:"140"`
	AvgOrderValue    decimal.Decimal `json:"avgOrderValue" swaggertype:"number" example:"999"`
	PendingCheckouts int64           `json:"pendingCheckouts" example:"7"`
}

// DailyRevenue is one point of the revenue chart
type DailyRevenue struct {
	Day     time.Time       `json:"day"`
	Revenue decimal.Decimal `json:"revenue" swaggertype:"number"`
	Orders  int64           `json:"orders"`
}

// AdminDashboardResponse is the admin dashboard page model
type AdminDashboardResponse struct {
	Stats              AdminStats        `json:"stats"`
	RevenueByDay       []DailyRevenue    `json:"revenueByDay"`
	Orders             []OrderResponse   `json:"orders"`
	Students           []StudentResponse `json:"students"`
	StudentsPagination PaginationInfo    `json:"studentsPagination"`
}

// FromRevenuePoints maps the daily revenue series
func FromRevenuePoints(points []models.RevenuePoint) []DailyRevenue {
	out := make([]DailyRevenue, 0, len(points))
	for _, p := range points {
		out = append(out, DailyRevenue{Day: p.Day, Revenue: p.Revenue, Orders: p.Orders})
	}
	return out
}
