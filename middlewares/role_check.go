package middlewares

import (
	"fmt"
	"net/http"

	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
)

// RequireRoles gates a route group to the given roles. Admin always
// passes.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if userRole == "admin" {
			c.Next()
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, fmt.Errorf("%v access required", roles))
		c.Abort()
	}
}
