package models

import "time"

type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignmentID uint       `gorm:"not null;uniqueIndex:idx_assignment_student" json:"assignment_id"`
	Assignment   Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	StudentID    uint       `gorm:"not null;uniqueIndex:idx_assignment_student" json:"student_id"`
	Student      User       `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	FileURL      string     `gorm:"type:varchar(500)" json:"file_url"`
	Comment      string     `gorm:"type:text" json:"comment"`
	Grade        *float64   `json:"grade,omitempty"`
	Feedback     string     `gorm:"type:text" json:"feedback"`
	SubmittedAt  time.Time  `gorm:"not null" json:"submitted_at"`
	GradedAt     *time.Time `json:"graded_at,omitempty"`
}
