package models

// RoleType defines the identity role carried in tokens and session cookies
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleAdmin   RoleType = "ADMIN"
)

// PaymentStatus is the status stored on an order row
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
)

// YearOptions are the accepted values for a student's year of study
var YearOptions = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "Other"}
