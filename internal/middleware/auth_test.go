package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lisalescano/back-mapp/internal/model"
	"github.com/lisalescano/back-mapp/internal/repository"
	"github.com/lisalescano/back-mapp/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubUsers satisfies the repository interface for the single method the
// middleware touches; everything else would panic if reached.
type stubUsers struct {
	repository.UserRepository
	users map[uuid.UUID]*model.User
}

func (r *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func newAuthRig(t *testing.T) (*token.Service, *stubUsers, *model.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := token.NewService("test-secret", time.Hour)
	user := &model.User{ID: uuid.New(), Username: "vecino1", Role: model.RoleUser, IsActive: true}
	repo := &stubUsers{users: map[uuid.UUID]*model.User{user.ID: user}}
	return tokens, repo, user
}

func authRouter(tokens *token.Service, repo *stubUsers, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(tokens, repo)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": GetUser(c).Username})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthHappyPath(t *testing.T) {
	tokens, repo, user := newAuthRig(t)
	tk, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	w := doGet(authRouter(tokens, repo), "Bearer "+tk)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vecino1")
}

func TestJWTAuthMissingHeader(t *testing.T) {
	tokens, repo, _ := newAuthRig(t)

	w := doGet(authRouter(tokens, repo), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Autenticación requerida")
}

func TestJWTAuthMalformedScheme(t *testing.T) {
	tokens, repo, user := newAuthRig(t)
	tk, _ := tokens.Issue(user.ID)

	w := doGet(authRouter(tokens, repo), "Token "+tk)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	tokens, repo, _ := newAuthRig(t)

	w := doGet(authRouter(tokens, repo), "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token inválido o expirado")
}

func TestJWTAuthExpiredToken(t *testing.T) {
	_, repo, user := newAuthRig(t)
	expired := token.NewService("test-secret", -time.Minute)
	tk, err := expired.Issue(user.ID)
	require.NoError(t, err)

	w := doGet(authRouter(expired, repo), "Bearer "+tk)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A valid token outlives its account: deactivation or deletion cuts access on
// the next request.
func TestJWTAuthInactiveOrDeletedUser(t *testing.T) {
	tokens, repo, user := newAuthRig(t)
	tk, err := tokens.Issue(user.ID)
	require.NoError(t, err)
	r := authRouter(tokens, repo)

	user.IsActive = false
	w := doGet(r, "Bearer "+tk)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Usuario no encontrado o inactivo")

	delete(repo.users, user.ID)
	w = doGet(r, "Bearer "+tk)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleForbidden(t *testing.T) {
	tokens, repo, user := newAuthRig(t)
	tk, _ := tokens.Issue(user.ID)

	w := doGet(authRouter(tokens, repo, RequireRole(model.RoleAdmin)), "Bearer "+tk)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "No tienes permisos para acceder a este recurso")
	assert.Contains(t, w.Body.String(), "rol actual: user")
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	tokens, repo, user := newAuthRig(t)
	user.Role = model.RoleAdmin
	tk, _ := tokens.Issue(user.ID)

	w := doGet(authRouter(tokens, repo, RequireRole(model.RoleAdmin)), "Bearer "+tk)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only", RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
