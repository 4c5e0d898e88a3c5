package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/auth"
	"github.com/yigit/javamaster/internal/pkg/email"
	"github.com/yigit/javamaster/internal/pkg/validation"
)

// ProfileWait bounds how long sign-up waits for the new student row to be readable
type ProfileWait struct {
	Interval time.Duration
	Attempts int
}

// AuthService handles authentication operations
type AuthService struct {
	students    StudentStore
	admins      AdminStore
	tokens      TokenStore
	jwtService  *auth.JWTService
	mailer      email.EmailService
	profileWait ProfileWait
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	students StudentStore,
	admins AdminStore,
	tokens TokenStore,
	jwtService *auth.JWTService,
	mailer email.EmailService,
	profileWait ProfileWait,
	logger zerolog.Logger,
) *AuthService {
	if profileWait.Attempts < 1 {
		profileWait.Attempts = 1
	}
	return &AuthService{
		students:    students,
		admins:      admins,
		tokens:      tokens,
		jwtService:  jwtService,
		mailer:      mailer,
		profileWait: profileWait,
		logger:      logger,
	}
}

// SignUp validates the form, creates the student and waits until the profile
// can be read back. A duplicate email is reported as a validation error on
// the email field; a profile that never becomes readable yields ErrNotReady.
func (s *AuthService) SignUp(ctx context.Context, in models.NewStudent) (*models.Student, error) {
	in.Email = validation.CleanString(in.Email, true)
	in.FullName = validation.CleanString(in.FullName, false)
	in.CollegeName = validation.CleanString(in.CollegeName, false)
	in.MobileNumber = validation.CleanString(in.MobileNumber, false)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, apperrors.NewServiceError(err, "could not create account")
	}

	student := &models.Student{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		CollegeName:  in.CollegeName,
		Year:         in.Year,
		MobileNumber: in.MobileNumber,
	}
	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewValidationError("email already registered",
				map[string]interface{}{"email": "an account with this email already exists"})
		}
		return nil, apperrors.NewServiceError(err, "could not create account")
	}

	profile, err := s.awaitProfile(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendWelcomeEmail(ctx, profile.Email, profile.FullName); err != nil {
		s.logger.Warn().Err(err).Str("studentID", profile.ID.String()).Msg("Welcome email failed")
	}

	s.logger.Info().Str("studentID", profile.ID.String()).Msg("Student signed up")
	return profile, nil
}

// awaitProfile re-reads the new row a bounded number of times
func (s *AuthService) awaitProfile(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	for attempt := 1; ; attempt++ {
		profile, err := s.students.GetByID(ctx, id)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewServiceError(err, "could not load profile")
		}
		if attempt >= s.profileWait.Attempts {
			s.logger.Warn().Str("studentID", id.String()).Int("attempts", attempt).Msg("Student profile not readable after sign-up")
			return nil, apperrors.ErrNotReady
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.profileWait.Interval):
		}
	}
}

// Login checks a student's email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Student, error) {
	student, err := s.students.GetByEmail(ctx, validation.CleanString(email, true))
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.NewServiceError(err, "could not sign in")
	}
	if !auth.CheckPassword(student.PasswordHash, password) {
		s.logger.Debug().Str("studentID", student.ID.String()).Msg("Password mismatch")
		return nil, apperrors.ErrInvalidCredentials
	}
	return student, nil
}

// AdminLogin checks an admin's email against the stored bcrypt hash
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*models.AdminUser, error) {
	admin, err := s.admins.GetByEmail(ctx, validation.CleanString(email, true))
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.NewServiceError(err, "could not sign in")
	}
	if !auth.CheckPassword(admin.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return admin, nil
}

// IssueStudentTokens creates an access/refresh pair for API clients
func (s *AuthService) IssueStudentTokens(ctx context.Context, student *models.Student) (*dto.TokenResponse, error) {
	access, refresh, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(student.ID, student.Email, models.RoleStudent)
	if err != nil {
		return nil, apperrors.NewServiceError(err, "could not issue token")
	}
	if err := s.tokens.CreateToken(ctx, refresh, student.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, apperrors.NewServiceError(err, "could not issue token")
	}
	return &dto.TokenResponse{
		AccessToken:           access,
		TokenType:             "Bearer",
		ExpiresIn:             int64(expiresIn),
		RefreshToken:          refresh,
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}

// IssueAdminToken creates an access token for an admin. Admin API sessions are not refreshable.
func (s *AuthService) IssueAdminToken(admin *models.AdminUser) (*dto.TokenResponse, error) {
	access, _, expiresIn, _, err := s.jwtService.GenerateTokenPair(admin.ID, admin.Email, models.RoleAdmin)
	if err != nil {
		return nil, apperrors.NewServiceError(err, "could not issue token")
	}
	return &dto.TokenResponse{AccessToken: access, TokenType: "Bearer", ExpiresIn: int64(expiresIn)}, nil
}

// RefreshToken rotates a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	studentID, err := s.tokens.GetStudentIDByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, apperrors.NewServiceError(err, "could not refresh token")
	}
	return s.IssueStudentTokens(ctx, student)
}

// RevokeRefreshToken signs an API client out
func (s *AuthService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	err := s.tokens.RevokeToken(ctx, refreshToken)
	if errors.Is(err, apperrors.ErrTokenNotFound) {
		return nil
	}
	return err
}
