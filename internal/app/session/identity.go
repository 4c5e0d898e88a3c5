package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

// studentIdentity is the persisted shape of a signed-in student
type studentIdentity struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	CollegeName  string    `json:"collegeName"`
	Year         string    `json:"year"`
	MobileNumber string    `json:"mobileNumber"`
	CreatedAt    time.Time `json:"createdAt"`
}

// adminIdentity is the persisted shape of a signed-in admin
type adminIdentity struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
}

// ToStudentIdentity serializes the fields of s that survive between requests
func ToStudentIdentity(s *models.Student) ([]byte, error) {
	return json.Marshal(studentIdentity{
		ID:           s.ID,
		Email:        s.Email,
		FullName:     s.FullName,
		CollegeName:  s.CollegeName,
		Year:         s.Year,
		MobileNumber: s.MobileNumber,
		CreatedAt:    s.CreatedAt,
	})
}

// FromStudentIdentity parses a persisted student identity. Unknown fields, a
// missing id or a missing email make the entry invalid.
func FromStudentIdentity(raw []byte) (*models.Student, error) {
	var id studentIdentity
	if err := decodeStrict(raw, &id); err != nil {
		return nil, err
	}
	if id.ID == uuid.Nil || strings.TrimSpace(id.Email) == "" {
		return nil, apperrors.NewValidationError("student identity is missing id or email", nil)
	}
	return &models.Student{
		ID:           id.ID,
		Email:        id.Email,
		FullName:     id.FullName,
		CollegeName:  id.CollegeName,
		Year:         id.Year,
		MobileNumber: id.MobileNumber,
		CreatedAt:    id.CreatedAt,
	}, nil
}

// ToAdminIdentity serializes the admin for persistence. The password hash is never included.
func ToAdminIdentity(a *models.AdminUser) ([]byte, error) {
	return json.Marshal(adminIdentity{ID: a.ID, Email: a.Email, FullName: a.FullName})
}

// FromAdminIdentity parses a persisted admin identity
func FromAdminIdentity(raw []byte) (*models.AdminUser, error) {
	var id adminIdentity
	if err := decodeStrict(raw, &id); err != nil {
		return nil, err
	}
	if id.ID == uuid.Nil || strings.TrimSpace(id.Email) == "" {
		return nil, apperrors.NewValidationError("admin identity is missing id or email", nil)
	}
	return &models.AdminUser{ID: id.ID, Email: id.Email, FullName: id.FullName}, nil
}

func decodeStrict(raw []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("malformed identity: %v", err), nil)
	}
	return nil
}
