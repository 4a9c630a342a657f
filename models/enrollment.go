package models

import "time"

const (
	EnrollmentActive  = "active"
	EnrollmentDropped = "dropped"
)

type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_course_student" json:"course_id"`
	Course    Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_course_student" json:"student_id"`
	Student   User      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
