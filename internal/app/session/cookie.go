package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/auth"
)

// CookieOptions controls the attributes of identity cookies
type CookieOptions struct {
	Secure bool
	Domain string
}

// CookiePersister keeps each identity in an HTTP-only cookie holding a signed JWT
type CookiePersister struct {
	c    *gin.Context
	jwt  *auth.JWTService
	opts CookieOptions
}

// NewCookiePersister binds a persister to one request
func NewCookiePersister(c *gin.Context, jwtService *auth.JWTService, opts CookieOptions) *CookiePersister {
	return &CookiePersister{c: c, jwt: jwtService, opts: opts}
}

func roleFor(key string) (models.RoleType, error) {
	switch key {
	case StudentKey:
		return models.RoleStudent, nil
	case AdminKey:
		return models.RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown identity key %q", key)
	}
}

// Load returns the identity carried by the cookie named key
func (p *CookiePersister) Load(_ context.Context, key string) ([]byte, error) {
	role, err := roleFor(key)
	if err != nil {
		return nil, err
	}

	value, err := p.c.Cookie(key)
	if err != nil || value == "" {
		return nil, ErrNoEntry
	}

	claims, err := p.jwt.ValidateToken(value)
	if err != nil {
		return nil, err
	}
	if claims.RoleType != string(role) || len(claims.Identity) == 0 {
		return nil, apperrors.ErrTokenInvalid
	}
	return claims.Identity, nil
}

// Store signs value and writes it to the cookie named key
func (p *CookiePersister) Store(_ context.Context, key string, value []byte) error {
	role, err := roleFor(key)
	if err != nil {
		return err
	}

	var subject struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
	}
	if err := json.Unmarshal(value, &subject); err != nil {
		return fmt.Errorf("identity is not a JSON object: %w", err)
	}
	if subject.ID == uuid.Nil {
		return errors.New("identity has no id")
	}

	token, err := p.jwt.GenerateIdentityToken(subject.ID, subject.Email, role, value)
	if err != nil {
		return err
	}

	p.c.SetSameSite(http.SameSiteLaxMode)
	p.c.SetCookie(key, token, int(p.jwt.SessionTTL().Seconds()), "/", p.opts.Domain, p.opts.Secure, true)
	return nil
}

// Remove expires the cookie named key
func (p *CookiePersister) Remove(_ context.Context, key string) error {
	p.c.SetSameSite(http.SameSiteLaxMode)
	p.c.SetCookie(key, "", -1, "/", p.opts.Domain, p.opts.Secure, true)
	return nil
}
