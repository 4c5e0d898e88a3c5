package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

func newTestJWT() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "javamaster.test",
	})
}

func TestGenerateTokenPairRoundTrip(t *testing.T) {
	svc := newTestJWT()
	id := uuid.New()

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(id, "a@x.com", models.RoleStudent)
	require.NoError(t, err)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, 60, expiresIn)
	assert.Equal(t, 3600, refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(access)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, string(models.RoleStudent), claims.RoleType)
}

func TestIdentityTokenCarriesSnapshot(t *testing.T) {
	svc := newTestJWT()
	token, err := svc.GenerateIdentityToken(uuid.New(), "a@x.com", models.RoleStudent, []byte(`{"email":"a@x.com"}`))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@x.com"}`, string(claims.Identity))
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	token, err := newTestJWT().GenerateIdentityToken(uuid.New(), "a@x.com", models.RoleAdmin, nil)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Minute, TokenIssuer: "javamaster.test"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "s", AccessTokenExp: -time.Minute, TokenIssuer: "javamaster.test"})
	access, _, _, _, err := svc.GenerateTokenPair(uuid.New(), "a@x.com", models.RoleStudent)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer prefix", header: "Bearer a.b.c", want: "a.b.c"},
		{name: "raw jwt", header: "a.b.c", want: "a.b.c"},
		{name: "quoted", header: `"Bearer a.b.c"`, want: "a.b.c"},
		{name: "empty", header: "", wantErr: true},
		{name: "garbage", header: "Basic xyz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	BcryptCost = 4
	hash, err := HashPassword("P@ssw0rd")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "P@ssw0rd"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
