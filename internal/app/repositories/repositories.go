package repositories

import (
	"github.com/yigit/javamaster/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository         *StudentRepository
	AdminRepository           *AdminRepository
	CourseRepository          *CourseRepository
	OrderRepository           *OrderRepository
	CheckoutAttemptRepository *CheckoutAttemptRepository
	TokenRepository           *TokenRepository
}

// NewRepositories initializes all repositories on the same connection pool
func NewRepositories(conn db.TxBeginner) *Repositories {
	return &Repositories{
		StudentRepository:         NewStudentRepository(conn),
		AdminRepository:           NewAdminRepository(conn),
		CourseRepository:          NewCourseRepository(conn),
		OrderRepository:           NewOrderRepository(conn),
		CheckoutAttemptRepository: NewCheckoutAttemptRepository(conn),
		TokenRepository:           NewTokenRepository(conn),
	}
}
