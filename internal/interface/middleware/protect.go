package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
	"github.com/bootcamphub/bootcamp-api/pkg/helpers"
	"github.com/bootcamphub/bootcamp-api/pkg/response"
)

// CtxUserKey holds the resolved identity in the Gin context.
const CtxUserKey = "currentUser"

const unauthorizedMsg = "not authorized to access this route"

// Protect is the authentication guard. It locates a bearer token in the
// Authorization header or the token cookie, verifies it, resolves the
// identity record, and attaches it to the request context. A verified
// token whose identity no longer resolves (deleted account) is treated
// as unauthenticated.
func Protect(jwt *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortErr(c, http.StatusUnauthorized, unauthorizedMsg)
			return
		}
		uid, err := jwt.Verify(token)
		if err != nil {
			response.AbortErr(c, http.StatusUnauthorized, unauthorizedMsg)
			return
		}
		user, err := users.GetByID(c.Request.Context(), uid)
		if err != nil || user == nil {
			response.AbortErr(c, http.StatusUnauthorized, unauthorizedMsg)
			return
		}
		c.Set(CtxUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity attached by Protect, or nil on
// unprotected routes.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if t, err := c.Cookie(helpers.TokenCookie); err == nil {
		return t
	}
	return ""
}
