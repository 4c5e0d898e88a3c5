package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/middleware"
)

// AuthService is the account API used by AuthController
type AuthService interface {
	SignUp(ctx context.Context, in models.NewStudent) (*models.Student, error)
	Login(ctx context.Context, email, password string) (*models.Student, error)
	AdminLogin(ctx context.Context, email, password string) (*models.AdminUser, error)
	IssueStudentTokens(ctx context.Context, student *models.Student) (*dto.TokenResponse, error)
	IssueAdminToken(admin *models.AdminUser) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	RevokeRefreshToken(ctx context.Context, refreshToken string) error
}

// Post-authentication destinations
const (
	StudentHome = "/dashboard"
	AdminHome   = "/admin/dashboard"
	PublicHome  = "/"
)

// AuthController handles sign-up, sign-in and sign-out for pages and API clients
type AuthController struct {
	authService AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// SignUpForm godoc
// @Summary Sign-up form
// @Description Returns the options of the sign-up form. Signed-in students are sent to their dashboard.
// @Tags pages
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SignUpFormResponse}
// @Success 302 {string} string "Redirect to /dashboard"
// @Router /signup [get]
func (c *AuthController) SignUpForm(ctx *gin.Context) {
	if _, ok := middleware.CurrentStudent(ctx); ok {
		ctx.Redirect(http.StatusFound, StudentHome)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SignUpFormResponse{YearOptions: models.YearOptions}})
}

// SignUp godoc
// @Summary Create a student account
// @Description Creates the account, signs the student in and redirects to the dashboard
// @Tags pages
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body models.NewStudent true "Sign-up form"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse}
// @Success 303 {string} string "Redirect to /dashboard"
// @Failure 400 {object} dto.ErrorResponse "Validation failed or email already registered"
// @Failure 503 {object} dto.ErrorResponse "Profile not ready"
// @Router /signup [post]
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req models.NewStudent
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Debug().Err(err).Msg("Invalid sign-up form")
		respondBindError(ctx, err)
		return
	}

	h, ok := holder(ctx)
	if !ok {
		return
	}
	student, err := h.SignUp(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("studentID", student.ID.String()).Msg("Student account created")
	respondRedirect(ctx, http.StatusCreated, StudentHome, dto.AuthResponse{
		Student:  dto.FromStudent(student),
		Redirect: StudentHome,
	})
}

// LoginForm godoc
// @Summary Login page
// @Description Signed-in students are sent to their dashboard
// @Tags pages
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.LoginRequest}
// @Success 302 {string} string "Redirect to /dashboard"
// @Router /login [get]
func (c *AuthController) LoginForm(ctx *gin.Context) {
	if _, ok := middleware.CurrentStudent(ctx); ok {
		ctx.Redirect(http.StatusFound, StudentHome)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.LoginRequest{}})
}

// Login godoc
// @Summary Student login
// @Tags pages
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse}
// @Success 303 {string} string "Redirect to /dashboard"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	h, ok := holder(ctx)
	if !ok {
		return
	}
	student, err := h.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.logger.Debug().Err(err).Msg("Student login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondRedirect(ctx, http.StatusOK, StudentHome, dto.AuthResponse{
		Student:  dto.FromStudent(student),
		Redirect: StudentHome,
	})
}

// AdminLogin godoc
// @Summary Admin login
// @Description Checks the admin credentials and sets the admin session cookie
// @Tags pages, admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse}
// @Success 303 {string} string "Redirect to /admin/dashboard"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	h, ok := holder(ctx)
	if !ok {
		return
	}
	admin, err := h.AdminLogin(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.logger.Warn().Str("email", req.Email).Msg("Admin login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondRedirect(ctx, http.StatusOK, AdminHome, dto.AuthResponse{
		Admin:    dto.FromAdmin(admin),
		Redirect: AdminHome,
	})
}

// Logout godoc
// @Summary Student logout
// @Tags pages
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.RedirectResponse}
// @Success 303 {string} string "Redirect to /"
// @Router /logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	h, ok := holder(ctx)
	if !ok {
		return
	}
	h.Logout(ctx.Request.Context())
	respondRedirect(ctx, http.StatusOK, PublicHome, dto.RedirectResponse{Redirect: PublicHome})
}

// AdminLogout godoc
// @Summary Admin logout
// @Tags pages, admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.RedirectResponse}
// @Success 303 {string} string "Redirect to /"
// @Router /admin/logout [post]
func (c *AuthController) AdminLogout(ctx *gin.Context) {
	h, ok := holder(ctx)
	if !ok {
		return
	}
	h.AdminLogout(ctx.Request.Context())
	respondRedirect(ctx, http.StatusOK, PublicHome, dto.RedirectResponse{Redirect: PublicHome})
}

// Register handles API registration
// @Summary Register a student
// @Description Creates a student account and returns a bearer token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.NewStudent true "Student registration information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 503 {object} dto.ErrorResponse "Profile not ready"
// @Router /api/v1/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req models.NewStudent
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	student, err := c.authService.SignUp(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	tokens, err := c.authService.IssueStudentTokens(ctx.Request.Context(), student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.AuthResponse{Token: tokens, Student: dto.FromStudent(student)}})
}

// APILogin handles API login
// @Summary Student login
// @Description Authenticates a student and returns a bearer token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (c *AuthController) APILogin(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	student, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	tokens, err := c.authService.IssueStudentTokens(ctx.Request.Context(), student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.AuthResponse{Token: tokens, Student: dto.FromStudent(student)}})
}

// APIAdminLogin handles admin API login
// @Summary Admin login
// @Description Authenticates an admin and returns an access token
// @Tags auth, admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /api/v1/auth/admin/login [post]
func (c *AuthController) APIAdminLogin(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	admin, err := c.authService.AdminLogin(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	token, err := c.authService.IssueAdminToken(admin)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.AuthResponse{Token: token, Admin: dto.FromAdmin(admin)}})
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid or revoked refresh token"
// @Router /api/v1/auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	tokens, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens})
}

// APILogout revokes a refresh token
// @Summary Revoke refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /api/v1/auth/logout [post]
func (c *AuthController) APILogout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	if err := c.authService.RevokeRefreshToken(ctx.Request.Context(), req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Logged out"}})
}
