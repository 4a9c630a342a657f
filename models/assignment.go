package models

import "time"

type Assignment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CourseID      uint      `gorm:"not null;index" json:"course_id"`
	Course        Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	Points        float64   `gorm:"not null;default:100" json:"points"`
	DueDate       time.Time `json:"due_date"`
	AttachmentURL string    `gorm:"type:varchar(500)" json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
