package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
)

func authorizeRouter(user *entity.User, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	attach := func(c *gin.Context) {
		if user != nil {
			c.Set(CtxUserKey, user)
		}
		c.Next()
	}
	r.POST("/things", attach, Authorize(roles...), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	return r
}

func doPost(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/things", nil))
	return w
}

func TestAuthorizeAllowedRole(t *testing.T) {
	u := &entity.User{ID: "u1", Role: entity.RolePublisher}
	w := doPost(authorizeRouter(u, entity.RolePublisher, entity.RoleAdmin))
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestAuthorizeDisallowedRole(t *testing.T) {
	u := &entity.User{ID: "u1", Role: entity.RoleUser}
	w := doPost(authorizeRouter(u, entity.RolePublisher, entity.RoleAdmin))
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "user role user is not authorized to access this route")
}

func TestAuthorizeNoIdentity(t *testing.T) {
	w := doPost(authorizeRouter(nil, entity.RolePublisher))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCanAccessOwnership(t *testing.T) {
	admin := &entity.User{ID: "a1", Role: entity.RoleAdmin}
	owner := &entity.User{ID: "p1", Role: entity.RolePublisher}
	other := &entity.User{ID: "p2", Role: entity.RolePublisher}

	require.True(t, admin.CanAccess("p1"), "admin bypasses ownership")
	require.True(t, owner.CanAccess("p1"))
	require.False(t, other.CanAccess("p1"))

	var nobody *entity.User
	require.False(t, nobody.CanAccess("p1"))
}
