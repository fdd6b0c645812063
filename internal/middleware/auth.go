package middleware

import (
	"net/http"
	"strings"

	"github.com/lisalescano/back-mapp/internal/apierror"
	"github.com/lisalescano/back-mapp/internal/model"
	"github.com/lisalescano/back-mapp/internal/repository"
	"github.com/lisalescano/back-mapp/internal/token"

	"github.com/gin-gonic/gin"
)

const UserKey = "user"

// JWTAuth validates the Bearer token and resolves the acting user. The user
// record is re-read on every request: a token stays valid until natural
// expiry, but a deleted or deactivated account is rejected here with 401.
func JWTAuth(tokens *token.Service, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticación requerida"))
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido o expirado"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Usuario no encontrado o inactivo"))
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// RequireRole rejects requests whose resolved user role is not in the allowed
// set. The response names the required roles and the caller's actual role.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Usuario no autenticado"))
			return
		}
		if !allowed[user.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.WithDetails(
				"No tienes permisos para acceder a este recurso",
				"requiere rol: "+strings.Join(roles, "|")+", rol actual: "+user.Role,
			))
			return
		}
		c.Next()
	}
}

// GetUser retrieves the resolved user from the Gin context; nil when the
// route carries no JWTAuth middleware.
func GetUser(c *gin.Context) *model.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
