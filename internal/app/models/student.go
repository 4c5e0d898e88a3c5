package models

import (
	"time"

	"github.com/google/uuid"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID           uuid.UUID `json:"id" db:"id" example:"0b8e8a3c-6c2f-4a8e-9a59-0f7f0c1f7d11"`
	Email        string    `json:"email" db:"email" example:"a@x.com"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name" example:"Asha Rao"`
	CollegeName  string    `json:"collegeName" db:"college_name" example:"PES University"`
	Year         string    `json:"year" db:"year" example:"2nd Year"`
	MobileNumber string    `json:"mobileNumber" db:"mobile_number" example:"9876543210"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// NewStudent contains the fields needed to create a student account
type NewStudent struct {
	Email        string `json:"email" form:"email" binding:"required,email,max=255"`
	Password     string `json:"password" form:"password" binding:"required,min=8,max=72"`
	FullName     string `json:"fullName" form:"fullName" binding:"required,notblank,max=100"`
	CollegeName  string `json:"collegeName" form:"collegeName" binding:"required,notblank,max=150"`
	Year         string `json:"year" form:"year" binding:"required,year"`
	MobileNumber string `json:"mobileNumber" form:"mobileNumber" binding:"required,mobile"`
}
