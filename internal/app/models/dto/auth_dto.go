package dto

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email" example:"a@x.com"`
	Password string `json:"password" form:"password" binding:"required" example:"P@ssw0rd"`
}

// TokenResponse represents the bearer token pair returned to API clients
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents the refresh request body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse is returned by sign-up and login endpoints
type AuthResponse struct {
	Token    *TokenResponse   `json:"token,omitempty"`
	Student  *StudentResponse `json:"student,omitempty"`
	Admin    *AdminResponse   `json:"admin,omitempty"`
	Redirect string           `json:"redirect,omitempty" example:"/dashboard"`
}

// SignUpFormResponse describes the sign-up form
type SignUpFormResponse struct {
	YearOptions []string `json:"yearOptions"`
}
