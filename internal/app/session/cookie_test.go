package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/pkg/auth"
)

func testJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "javamaster.in",
	})
}

func TestCookiePersisterRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := testJWT()
	student := &models.Student{ID: uuid.New(), Email: "a@x.com", FullName: "Asha"}
	raw, err := ToStudentIdentity(student)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, NewCookiePersister(c, jwtService, CookieOptions{}).Store(context.Background(), StudentKey, raw))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, StudentKey, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = req

	loaded, err := NewCookiePersister(c2, jwtService, CookieOptions{}).Load(context.Background(), StudentKey)
	require.NoError(t, err)
	decoded, err := FromStudentIdentity(loaded)
	require.NoError(t, err)
	assert.Equal(t, student.ID, decoded.ID)

	// a student token is not accepted as an admin identity
	req.AddCookie(&http.Cookie{Name: AdminKey, Value: cookies[0].Value})
	_, err = NewCookiePersister(c2, jwtService, CookieOptions{}).Load(context.Background(), AdminKey)
	assert.Error(t, err)
}

func TestCookiePersisterMissingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := NewCookiePersister(c, testJWT(), CookieOptions{}).Load(context.Background(), StudentKey)
	assert.ErrorIs(t, err, ErrNoEntry)
}
