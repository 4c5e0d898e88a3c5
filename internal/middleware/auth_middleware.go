package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/app/session"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/auth"
)

// gin context keys
const (
	SessionKey    = "session"
	StudentIDKey  = "studentID"
	AdminEmailKey = "adminEmail"
	UserIDKey     = "userID"
	EmailKey      = "email"
	RoleKey       = "roleType"
)

// LoginPath is where gated pages send anonymous visitors
const LoginPath = "/login"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService    *auth.JWTService
	authenticator session.Authenticator
	cookies       session.CookieOptions
	logger        zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authenticator session.Authenticator, cookies session.CookieOptions, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:    jwtService,
		authenticator: authenticator,
		cookies:       cookies,
		logger:        logger,
	}
}

// Session loads the identity cookies into a per-request session.Holder
func (m *AuthMiddleware) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		holder := session.NewHolder(m.authenticator, session.NewCookiePersister(c, m.jwtService, m.cookies), m.logger)
		holder.Init(c.Request.Context())
		c.Set(SessionKey, holder)

		// keep the identity keys in step with logins and logouts made by handlers
		setIdentityKeys(c, holder.Snapshot())
		unsubscribe := holder.Subscribe(func(snap session.Snapshot) { setIdentityKeys(c, snap) })
		defer unsubscribe()

		c.Next()
	}
}

func setIdentityKeys(c *gin.Context, snap session.Snapshot) {
	studentID, adminEmail := "", ""
	if snap.Student != nil {
		studentID = snap.Student.ID.String()
	}
	if snap.Admin != nil {
		adminEmail = snap.Admin.Email
	}
	c.Set(StudentIDKey, studentID)
	c.Set(AdminEmailKey, adminEmail)
}

// HolderFrom returns the session installed by Session
func HolderFrom(c *gin.Context) (*session.Holder, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	holder, ok := v.(*session.Holder)
	return holder, ok
}

// CurrentStudent returns the signed-in student, if any
func CurrentStudent(c *gin.Context) (*models.Student, bool) {
	holder, ok := HolderFrom(c)
	if !ok {
		return nil, false
	}
	student := holder.Snapshot().Student
	return student, student != nil
}

// CurrentAdmin returns the signed-in admin, if any
func CurrentAdmin(c *gin.Context) (*models.AdminUser, bool) {
	holder, ok := HolderFrom(c)
	if !ok {
		return nil, false
	}
	admin := holder.Snapshot().Admin
	return admin, admin != nil
}

// RequireStudent redirects visitors without a student identity to the login page
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentStudent(c); !ok {
			redirectToLogin(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin redirects visitors without an admin identity to the login page
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentAdmin(c); !ok {
			redirectToLogin(c)
			return
		}
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	status := http.StatusFound
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		status = http.StatusSeeOther
	}
	c.Redirect(status, LoginPath)
	c.Abort()
}

// JWTAuth validates the bearer token of API requests
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		// Session cookies carry an identity snapshot and are not API credentials
		if len(claims.Identity) > 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(RoleKey, claims.RoleType)
		c.Next()
	}
}

// RoleRequired middleware to check if user has required role
func (m *AuthMiddleware) RoleRequired(requiredRole models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleKey)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("User role not found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != string(requiredRole) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
