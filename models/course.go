package models

import "time"

type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"type:varchar(20);unique;not null" json:"code"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Campus      string    `gorm:"type:varchar(100)" json:"campus"`
	FacultyID   uint      `gorm:"not null;index" json:"faculty_id"`
	Faculty     User      `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
