package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is a row of the 'admin_users' table. Admins never share identities with students.
type AdminUser struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email" example:"admin@javamaster.in"`
	FullName     string    `json:"fullName" db:"full_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
