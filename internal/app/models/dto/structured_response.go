package dto

import (
	"time"

	"github.com/yigit/javamaster/internal/app/models"
)

// StructuredResponse provides a base structured API response with a message
type StructuredResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message" example:"Operation completed successfully"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewStructuredResponse creates a standard structured API response
func NewStructuredResponse(data interface{}, message string) StructuredResponse {
	return StructuredResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// StudentResponse is the public view of a student identity
type StudentResponse struct {
	ID           string    `json:"id" example:"0b8e8a3c-6c2f-4a8e-9a59-0f7f0c1f7d11"`
	Email        string    `json:"email" example:"a@x.com"`
	FullName     string    `json:"fullName" example:"Asha Rao"`
	CollegeName  string    `json:"collegeName" example:"PES University"`
	Year         string    `json:"year" example:"2nd Year"`
	MobileNumber string    `json:"mobileNumber" example:"9876543210"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// AdminResponse is the public view of an admin identity
type AdminResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email" example:"admin@javamaster.in"`
	FullName string `json:"fullName"`
}

// FromStudent maps a student model, nil-safe
func FromStudent(s *models.Student) *StudentResponse {
	if s == nil {
		return nil
	}
	return &StudentResponse{
		ID:           s.ID.String(),
		Email:        s.Email,
		FullName:     s.FullName,
		CollegeName:  s.CollegeName,
		Year:         s.Year,
		MobileNumber: s.MobileNumber,
		CreatedAt:    s.CreatedAt,
	}
}

// FromStudents maps a slice of students
func FromStudents(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, item := range students {
		if item != nil {
			out = append(out, *FromStudent(item))
		}
	}
	return out
}

// FromAdmin maps an admin model, nil-safe
func FromAdmin(a *models.AdminUser) *AdminResponse {
	if a == nil {
		return nil
	}
	return &AdminResponse{
		ID:       a.ID.String(),
		Email:    a.Email,
		FullName: a.FullName,
	}
}
