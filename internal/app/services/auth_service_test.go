package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/auth"
)

func newAuthFixture(t *testing.T, wait ProfileWait) (*AuthService, *memStudents, *memDB, *mockMailer) {
	t.Helper()
	db := newMemDB()
	students := &memStudents{memDB: db}
	mailer := &mockMailer{}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "javamaster.test",
	})
	svc := NewAuthService(students, &memAdmins{memDB: db}, &memTokens{memDB: db}, jwtService, mailer, wait, zerolog.Nop())
	return svc, students, db, mailer
}

func signUpForm() models.NewStudent {
	return models.NewStudent{
		Email:        " A@X.com ",
		Password:     "P@ssw0rd",
		FullName:     "Asha Rao",
		CollegeName:  "PES University",
		Year:         "2nd Year",
		MobileNumber: "9876543210",
	}
}

func TestSignUpStoresOneStudent(t *testing.T) {
	svc, students, _, mailer := newAuthFixture(t, ProfileWait{})
	mailer.On("SendWelcomeEmail", mock.Anything, "a@x.com", "Asha Rao").Return(nil)

	student, err := svc.SignUp(context.Background(), signUpForm())
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", student.Email)
	assert.NotEqual(t, "P@ssw0rd", student.PasswordHash)
	assert.True(t, auth.CheckPassword(student.PasswordHash, "P@ssw0rd"))

	count, err := students.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	mailer.AssertExpectations(t)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _, db, mailer := newAuthFixture(t, ProfileWait{})
	mailer.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	db.addStudent("a@x.com")

	_, err := svc.SignUp(context.Background(), signUpForm())
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, apperrors.DetailsOf(err), "email")
	mailer.AssertNotCalled(t, "SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignUpValidation(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t, ProfileWait{})
	form := signUpForm()
	form.Password = "short"
	form.Year = "Final"

	_, err := svc.SignUp(context.Background(), form)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	details := apperrors.DetailsOf(err)
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "year")
}

func TestSignUpWaitsForProfile(t *testing.T) {
	svc, students, _, mailer := newAuthFixture(t, ProfileWait{Interval: time.Millisecond, Attempts: 3})
	mailer.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("sendgrid down"))
	students.hiddenReads = 2

	student, err := svc.SignUp(context.Background(), signUpForm())
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", student.Email)
}

func TestSignUpProfileNeverReady(t *testing.T) {
	svc, students, _, _ := newAuthFixture(t, ProfileWait{Interval: time.Millisecond, Attempts: 2})
	students.hiddenReads = 5

	_, err := svc.SignUp(context.Background(), signUpForm())
	assert.ErrorIs(t, err, apperrors.ErrNotReady)
}

func TestLogin(t *testing.T) {
	svc, _, _, mailer := newAuthFixture(t, ProfileWait{})
	mailer.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	_, err := svc.SignUp(context.Background(), signUpForm())
	require.NoError(t, err)

	student, err := svc.Login(context.Background(), "a@x.com", "P@ssw0rd")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", student.Email)

	_, err = svc.Login(context.Background(), "a@x.com", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@x.com", "P@ssw0rd")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAdminLogin(t *testing.T) {
	svc, _, db, _ := newAuthFixture(t, ProfileWait{})
	hash, err := auth.HashPassword("admin-pass")
	require.NoError(t, err)
	db.admins["admin@javamaster.in"] = &models.AdminUser{Email: "admin@javamaster.in", PasswordHash: hash}

	admin, err := svc.AdminLogin(context.Background(), "Admin@JavaMaster.in", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin@javamaster.in", admin.Email)

	_, err = svc.AdminLogin(context.Background(), "admin@javamaster.in", "nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.AdminLogin(context.Background(), "ghost@javamaster.in", "admin-pass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, _, db, _ := newAuthFixture(t, ProfileWait{})
	student := db.addStudent("a@x.com")
	ctx := context.Background()

	tokens, err := svc.IssueStudentTokens(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)
	require.NotEmpty(t, tokens.RefreshToken)

	rotated, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	_, err = svc.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	require.NoError(t, svc.RevokeRefreshToken(ctx, rotated.RefreshToken))
	require.NoError(t, svc.RevokeRefreshToken(ctx, rotated.RefreshToken))
}
