package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "students_email_key"})

	assert.True(t, IsDuplicateConstraintError(err, "students_email_key"))
	assert.False(t, IsDuplicateConstraintError(err, "orders_transaction_id_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), "students_email_key"))
}

func TestIsCheckViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23514", ConstraintName: "courses_seats_check"}

	assert.True(t, IsCheckViolation(err, "courses_seats_check"))
	assert.False(t, IsDuplicateConstraintError(err, "courses_seats_check"))
}
