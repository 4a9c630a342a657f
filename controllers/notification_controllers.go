package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campushub/lms-app/notifier"
	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
)

// NotificationController exposes per-user read access to the
// notification table. Rows are only ever created by the notifier in
// response to domain events, never through this controller.
type NotificationController struct {
	Notifier *notifier.Notifier
}

func NewNotificationController(n *notifier.Notifier) *NotificationController {
	return &NotificationController{Notifier: n}
}

// GetNotifications lists the caller's notifications, newest first,
// capped at 15.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	notifs, err := nc.Notifier.List(userID, limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", notifs)
}

// GetUnreadCount returns the caller's unread count. Clients poll this
// on an interval, so it stays a single indexed count.
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	count, err := nc.Notifier.UnreadCount(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Unread count", gin.H{"count": count})
}

// MarkRead marks one notification read. A notification owned by someone
// else answers 404, same as a missing one.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	notifID, err := strconv.Atoi(c.Param("notif_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid notification id"))
		return
	}

	if err := nc.Notifier.MarkRead(userID, uint(notifID)); err != nil {
		if errors.Is(err, notifier.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead marks all of the caller's notifications read.
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	if err := nc.Notifier.MarkAllRead(userID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All notifications marked as read", nil)
}

// ClearAll hard-deletes all of the caller's notifications.
func (nc *NotificationController) ClearAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	if err := nc.Notifier.ClearAll(userID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications cleared", nil)
}
