package notifier

import (
	"errors"
	"time"

	"github.com/campushub/lms-app/models"
	"github.com/campushub/lms-app/utils"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a notification does not exist or belongs
// to another user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("notification not found")

// DefaultListLimit caps List when the caller does not pass a limit.
const DefaultListLimit = 15

// DeliveryResult reports one recipient's insert outcome.
type DeliveryResult struct {
	UserID uint
	Err    error
}

// Notifier owns the notification table: fan-out writes and per-user
// read-state. Controllers never touch the table directly.
type Notifier struct {
	DB  *gorm.DB
	Hub *Hub
}

func New(db *gorm.DB, hub *Hub) *Notifier {
	return &Notifier{DB: db, Hub: hub}
}

// Notify inserts one row per recipient. Inserts are independent: a
// failed insert is recorded in the result slice and the loop moves on.
// An empty recipient set performs no inserts and is not an error.
// Callers must not fail their own request on delivery errors.
func (n *Notifier) Notify(event Event) []DeliveryResult {
	if len(event.Recipients) == 0 {
		return nil
	}

	results := make([]DeliveryResult, 0, len(event.Recipients))
	for _, userID := range event.Recipients {
		notif := models.Notification{
			UserID:       userID,
			Title:        event.Title,
			Message:      event.Message,
			Type:         event.Type,
			RelatedID:    event.RelatedID,
			ActorName:    event.ActorName,
			SubjectTitle: event.SubjectTitle,
			IsRead:       false,
			CreatedAt:    time.Now(),
		}

		err := n.DB.Create(&notif).Error
		results = append(results, DeliveryResult{UserID: userID, Err: err})
		if err != nil {
			if utils.ErrorLogger != nil {
				utils.ErrorLogger.Printf("notification delivery failed for user %d: %v", userID, err)
			}
			continue
		}

		if n.Hub != nil {
			n.Hub.Push(userID, HubMessage{Event: "notification", Data: notif})
		}
	}
	return results
}

// List returns the user's notifications, newest first, capped. There is
// no pagination cursor.
func (n *Notifier) List(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	var notifs []models.Notification
	err := n.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifs).Error
	return notifs, err
}

// UnreadCount is a single indexed count, cheap enough for idle polling.
func (n *Notifier) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := n.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips one notification to read. Returns ErrNotFound when the
// row does not exist or is owned by someone else. Marking an already
// read notification is a no-op.
func (n *Notifier) MarkRead(userID, notifID uint) error {
	var notif models.Notification
	err := n.DB.Where("id = ? AND user_id = ?", notifID, userID).First(&notif).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if notif.IsRead {
		return nil
	}
	return n.DB.Model(&notif).Update("is_read", true).Error
}

// MarkAllRead flips all of the user's unread rows in one statement.
func (n *Notifier) MarkAllRead(userID uint) error {
	return n.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// ClearAll hard-deletes all of the user's notifications.
func (n *Notifier) ClearAll(userID uint) error {
	return n.DB.Where("user_id = ?", userID).
		Delete(&models.Notification{}).Error
}
