package models

import "time"

const (
	AnnouncementTargetAll      = "all"
	AnnouncementTargetStudents = "students"

	AllCampuses = "All Campuses"
)

type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Target    string    `gorm:"type:varchar(20);not null;default:'all'" json:"target"`
	Campus    string    `gorm:"type:varchar(100);not null;default:'All Campuses'" json:"campus"`
	CreatedAt time.Time `json:"created_at"`
}
