package models

import "time"

// Notification types. RelatedID points at the entity named by Type and
// carries no foreign key; the referenced row may have been deleted.
const (
	NotifAssignment   = "assignment"
	NotifSubmission   = "submission"
	NotifGrade        = "grade"
	NotifCourse       = "course"
	NotifMessage      = "message"
	NotifAnnouncement = "announcement"
	NotifSystem       = "system"
)

// Notification is a single recipient's copy of an event. Fan-out to N
// recipients writes N rows so read-state stays per-user.
type Notification struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_user_read" json:"user_id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Type         string    `gorm:"type:varchar(20);not null" json:"type"`
	RelatedID    *uint     `json:"related_id,omitempty"`
	ActorName    string    `gorm:"type:varchar(255)" json:"actor_name"`
	SubjectTitle string    `gorm:"type:varchar(255)" json:"subject_title"`
	IsRead       bool      `gorm:"not null;default:false;index:idx_user_read" json:"is_read"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
