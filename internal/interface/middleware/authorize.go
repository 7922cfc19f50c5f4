package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bootcamphub/bootcamp-api/pkg/response"
)

// Authorize is the role check of the authorization guard. It must run
// after Protect. A resolved identity whose role is outside the allow-list
// is rejected with 403.
func Authorize(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.AbortErr(c, http.StatusUnauthorized, unauthorizedMsg)
			return
		}
		if _, ok := allowed[user.Role]; !ok {
			response.AbortErr(c, http.StatusForbidden,
				"user role "+user.Role+" is not authorized to access this route")
			return
		}
		c.Next()
	}
}
