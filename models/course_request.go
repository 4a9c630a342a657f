package models

import "time"

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

type CourseRequest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FacultyID    uint      `gorm:"not null;index" json:"faculty_id"`
	Faculty      User      `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	Code         string    `gorm:"type:varchar(20);not null" json:"code"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Campus       string    `gorm:"type:varchar(100)" json:"campus"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DecidedBy    *uint     `json:"decided_by,omitempty"`
	DecisionNote string    `gorm:"type:text" json:"decision_note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
