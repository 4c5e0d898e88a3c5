package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Course represents a catalog entry offered for sale
type Course struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Title           string          `json:"title" db:"title" example:"Core Java Bootcamp"`
	Description     string          `json:"description" db:"description"`
	OriginalPrice   decimal.Decimal `json:"originalPrice" db:"original_price" swaggertype:"number" example:"4999"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice" db:"discounted_price" swaggertype:"number" example:"999"`
	SeatsAvailable  int             `json:"seatsAvailable" db:"seats_available" example:"60"`
	SeatsReserved   int             `json:"seatsReserved" db:"seats_reserved" example:"12"`
	BatchStartDate  time.Time       `json:"batchStartDate" db:"batch_start_date"`
	Features        []string        `json:"features" db:"features"`
	Modules         []CourseModule  `json:"modules" db:"modules"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// CourseModule is one syllabus entry, stored in the jsonb 'modules' column
type CourseModule struct {
	Name   string   `json:"name"`
	Topics []string `json:"topics,omitempty"`
}

// SeatsLeft returns the number of seats still open for purchase
func (c *Course) SeatsLeft() int {
	left := c.SeatsAvailable - c.SeatsReserved
	if left < 0 {
		return 0
	}
	return left
}

// IsFull reports whether every seat has been reserved
func (c *Course) IsFull() bool {
	return c.SeatsReserved >= c.SeatsAvailable
}
