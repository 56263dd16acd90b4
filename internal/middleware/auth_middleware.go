package middleware

import (
	"net/http"
	"strings"

	"github.com/psyoonchild719/online-library-dashboard/internal/shared/apperror"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/contextutil"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer access token and threads the member
// identity through both the gin context and the request context, so services
// that only see context.Context still know the caller.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "Authentication required")
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		if typ, _ := claims["typ"].(string); typ != "access" {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		memberID, _ := claims["member_id"].(string)
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)
		if memberID == "" {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("member_id", memberID)
		c.Set("email", email)
		c.Set("role", role)

		ctx := contextutil.WithMemberID(c.Request.Context(), memberID)
		ctx = contextutil.WithEmail(ctx, email)
		ctx = contextutil.WithRole(ctx, role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, message, nil)
	c.Abort()
}
