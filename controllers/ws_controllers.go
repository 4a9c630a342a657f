package controllers

import (
	"net/http"

	"github.com/campushub/lms-app/notifier"
	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NotificationSocketHandler upgrades the connection and registers it
// with the hub so deliveries can push badge updates. The read loop only
// exists to observe the close.
func NotificationSocketHandler(hub *notifier.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
			return
		}

		hub.Register(userID, conn)
		defer hub.Unregister(userID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
