package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yigit/javamaster/internal/app/models"
)

// CourseResponse is the catalog view of a course
type CourseResponse struct {
	ID              string                `json:"id"`
	Title           string                `json:"title" example:"Core Java Bootcamp"`
	Description     string                `json:"description"`
	OriginalPrice   decimal.Decimal       `json:"originalPrice" swaggertype:"number" example:"4999"`
	DiscountedPrice decimal.Decimal       `json:"discountedPrice" swaggertype:"number" example:"999"`
	SeatsAvailable  int                   `json:"seatsAvailable" example:"60"`
	SeatsReserved   int                   `json:"seatsReserved" example:"12"`
	SeatsLeft       int                   `json:"seatsLeft" example:"48"`
	BatchStartDate  time.Time             `json:"batchStartDate"`
	Features        []string              `json:"features"`
	Modules         []models.CourseModule `json:"modules"`
}

// FromCourse maps a course model, nil-safe
func FromCourse(c *models.Course) *CourseResponse {
	if c == nil {
		return nil
	}
	features := c.Features
	if features == nil {
		features = []string{}
	}
	modules := c.Modules
	if modules == nil {
		modules = []models.CourseModule{}
	}
	return &CourseResponse{
		ID:              c.ID.String(),
		Title:           c.Title,
		Description:     c.Description,
		OriginalPrice:   c.OriginalPrice,
		DiscountedPrice: c.DiscountedPrice,
		SeatsAvailable:  c.SeatsAvailable,
		SeatsReserved:   c.SeatsReserved,
		SeatsLeft:       c.SeatsLeft(),
		BatchStartDate:  c.BatchStartDate,
		Features:        features,
		Modules:         modules,
	}
}

// FromCourses maps a slice of courses
func FromCourses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, item := range courses {
		if item != nil {
			out = append(out, *FromCourse(item))
		}
	}
	return out
}
