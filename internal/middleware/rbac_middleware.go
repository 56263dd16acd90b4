package middleware

import (
	"net/http"

	"github.com/psyoonchild719/online-library-dashboard/internal/rbac"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/apperror"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/contextutil"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACAuthorize gates a route on the caller's role. Runs after
// AuthMiddleware; an absent role means an unauthenticated request and is
// rejected the same way as an insufficient one.
func RBACAuthorize(enforcer *rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := contextutil.GetRole(c.Request.Context())
		if role == "" || enforcer == nil || !enforcer.Allowed(role, resource, action) {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You do not have permission to perform this action", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
