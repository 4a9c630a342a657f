package controllers

import (
	"github.com/campushub/lms-app/notifier"
	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
)

// ErrNoPermission is returned when a role check fails inside a handler.
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// currentUserID reads the authenticated user id set by the auth
// middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// reportDeliveries logs failed notification deliveries. Delivery is
// best-effort: the triggering action has already committed, so failures
// never propagate to the response.
func reportDeliveries(event string, results []notifier.DeliveryResult) {
	for _, r := range results {
		if r.Err != nil {
			utils.ErrorLogger.Printf("%s: notification to user %d failed: %v", event, r.UserID, r.Err)
		}
	}
}
