package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and puts user_id and role
// on the context. The token may also arrive as a query parameter, which
// the websocket endpoint relies on.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			if q := c.Query("token"); q != "" {
				token = "Bearer " + strings.TrimPrefix(q, "Bearer ")
			}
		}

		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization token missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(token, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(token, "Bearer ")
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		if claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user ID in token"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("token", tokenString)
		c.Next()
	}
}
